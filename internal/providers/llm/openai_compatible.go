package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/finadvisor/internal/core"
)

const (
	chatCompletionsPath = "/v1/chat/completions"
	advisoryTemperature = 0.3
)

// OpenAICompatible talks to any /v1/chat/completions endpoint. The other
// providers except Anthropic are thin presets of it.
type OpenAICompatible struct {
	baseProvider
	headers     map[string]string
	temperature float64
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	headers := make(map[string]string, len(cfg.ExtraHeaders)+1)
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	for k, v := range cfg.ExtraHeaders {
		headers[k] = v
	}
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		headers:      headers,
		temperature:  advisoryTemperature,
	}
}

type chatRequest struct {
	Model       string         `json:"model"`
	Messages    []core.Message `json:"messages"`
	Temperature float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message      core.Message `json:"message"`
		FinishReason string       `json:"finish_reason"`
	} `json:"choices"`
}

func (o *OpenAICompatible) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	req := chatRequest{
		Model:       o.model,
		Messages:    history,
		Temperature: o.temperature,
	}

	var resp chatResponse
	if err := o.postJSON(ctx, chatCompletionsPath, o.headers, req, &resp); err != nil {
		return core.Message{}, err
	}
	if len(resp.Choices) == 0 {
		return core.Message{}, fmt.Errorf("no choices in completion")
	}

	msg := resp.Choices[0].Message
	if msg.Role == "" {
		msg.Role = core.RoleAssistant
	}
	return msg, nil
}
