package llm

import "github.com/sandevgo/finadvisor/internal/core"

const openRouterBaseURL = "https://openrouter.ai/api"

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: openRouterBaseURL,
			APIKey:  apiKey,
			Model:   model,
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.AppRepositoryURL,
				"X-Title":      core.AppName,
			},
		}),
	}
}
