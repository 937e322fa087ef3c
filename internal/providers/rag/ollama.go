package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaEncoder calls the Ollama embeddings endpoint.
type OllamaEncoder struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaEncoder(baseURL, model string, timeout time.Duration) *OllamaEncoder {
	return &OllamaEncoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// nomic-embed-text style task prefixes.
func (o *OllamaEncoder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	return o.embed(ctx, "search_query: "+text)
}

func (o *OllamaEncoder) EncodePassage(ctx context.Context, text string) ([]float32, error) {
	return o.embed(ctx, "search_document: "+text)
}

func (o *OllamaEncoder) Shutdown() error {
	o.client.CloseIdleConnections()
	return nil
}

func (o *OllamaEncoder) embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: o.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("embedding API error (status %d): %s", resp.StatusCode, string(b))
	}

	var out ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding returned by model %s", o.model)
	}
	return out.Embedding, nil
}
