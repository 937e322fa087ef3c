package llm

// CustomOpenAI targets any self-hosted OpenAI-compatible endpoint
// (vLLM, LM Studio, llama.cpp server).
type CustomOpenAI struct {
	*OpenAICompatible
}

func NewCustomOpenAI(baseURL, apiKey, model string) *CustomOpenAI {
	return &CustomOpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: baseURL,
			APIKey:  apiKey,
			Model:   model,
		}),
	}
}
