package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/pkg/log"
)

const ProviderNone = "none"

// NewProvider creates the AIProvider selected by configuration. It returns
// nil without error for ProviderNone, in which case answers are narrated
// without a language model.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	switch cfg.GetProvider() {
	case "openai":
		return NewOpenAI(cfg.GetAPIKey(), cfg.GetModel()), nil
	case "anthropic":
		return NewAnthropic(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetAPIKey(), cfg.GetModel()), nil
	case "ollama":
		return NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("custom provider requires a base url")
		}
		return NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}
