package llm

const ollamaBaseURL = "http://localhost:11434"

// Ollama serves the OpenAI-compatible API under /v1.
type Ollama struct {
	*OpenAICompatible
}

func NewOllama(baseURL, apiKey, model string) *Ollama {
	if baseURL == "" {
		baseURL = ollamaBaseURL
	}
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: baseURL,
			APIKey:  apiKey,
			Model:   model,
		}),
	}
}
