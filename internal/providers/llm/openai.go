package llm

const openAIBaseURL = "https://api.openai.com"

// OpenAI provider is implemented using OpenAICompatible.
type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: openAIBaseURL,
			APIKey:  apiKey,
			Model:   model,
		}),
	}
}
