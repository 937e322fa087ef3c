package setup

import "github.com/sandevgo/finadvisor/internal/config"

// State accumulates the answers of the wizard steps.
type State struct {
	App      config.AppConfig
	Telegram config.TelegramConfig
	RAG      config.RAGConfig
}

func NewState(runtimePath string) *State {
	return &State{
		App: config.AppConfig{
			RuntimePath:    runtimePath,
			LLMProvider:    "ollama",
			LLMModel:       "llama3.2",
			EnableHTTP:     true,
			HTTPAddr:       ":8080",
			Currency:       "INR",
			EnableTelegram: false,
		},
		RAG: config.RAGConfig{
			Encoder:        config.EncoderHash,
			WatchKnowledge: true,
		},
	}
}

// defaultModels pre-fills the model step per provider.
var defaultModels = map[string]string{
	"ollama":     "llama3.2",
	"openai":     "gpt-4o-mini",
	"anthropic":  "claude-3-5-haiku-latest",
	"openrouter": "meta-llama/llama-3.1-8b-instruct",
	"custom":     "",
}

func needsAPIKey(provider string) bool {
	switch provider {
	case "openai", "anthropic", "openrouter":
		return true
	}
	return false
}

func needsBaseURL(provider string) bool {
	return provider == "ollama" || provider == "custom"
}
