package llm

import (
	"context"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 1024
)

type Anthropic struct {
	baseProvider
}

func NewAnthropic(baseURL, apiKey, model string) *Anthropic {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &Anthropic{baseProvider: newBaseProvider(baseURL, apiKey, model)}
}

type messagesRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system,omitempty"`
	Messages  []core.Message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Chat moves system messages into the top-level system field; the Messages
// API accepts only user and assistant turns.
func (a *Anthropic) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	req := messagesRequest{Model: a.model, MaxTokens: anthropicMaxTokens}

	var system []string
	for _, m := range history {
		if m.Role == core.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		req.Messages = append(req.Messages, m)
	}
	req.System = strings.Join(system, "\n\n")

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp messagesResponse
	if err := a.postJSON(ctx, "/v1/messages", headers, req, &resp); err != nil {
		return core.Message{}, err
	}

	var text strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	return core.Message{Role: core.RoleAssistant, Content: text.String()}, nil
}
