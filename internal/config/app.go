package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/finadvisor/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"FIN_RUNTIME_PATH" envDefault:".finadvisor"`

	// Generation backend
	LLMProvider       string        `env:"FIN_LLM_PROVIDER" envDefault:"ollama"`
	LLMModel          string        `env:"FIN_LLM_MODEL" envDefault:"llama3.2"`
	LLMAPIKey         string        `env:"FIN_LLM_API_KEY"`
	LLMBaseURL        string        `env:"FIN_LLM_BASE_URL"`
	GenerationTimeout time.Duration `env:"FIN_GENERATION_TIMEOUT" envDefault:"30s"`

	// Transport Flags
	EnableTelegram bool   `env:"FIN_ENABLE_TELEGRAM" envDefault:"false"`
	EnableHTTP     bool   `env:"FIN_ENABLE_HTTP" envDefault:"true"`
	HTTPAddr       string `env:"FIN_HTTP_ADDR" envDefault:":8080"`

	Currency string `env:"FIN_CURRENCY" envDefault:"INR"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := env.ParseAs[AppConfig]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return &c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

// GetSystemPromptPath points to an optional override of the advisor instructions.
func (c AppConfig) GetSystemPromptPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "knowledge.db")
}

func (c AppConfig) GetCachePath() string {
	return filepath.Join(c.RuntimePath, "quotes.bolt")
}

func (c AppConfig) GetKnowledgePath() string {
	return filepath.Join(c.RuntimePath, "knowledge")
}

func (c AppConfig) GetProvider() string { return c.LLMProvider }
func (c AppConfig) GetModel() string    { return c.LLMModel }
func (c AppConfig) GetAPIKey() string   { return c.LLMAPIKey }
func (c AppConfig) GetBaseURL() string  { return c.LLMBaseURL }
