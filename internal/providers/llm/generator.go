package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/sandevgo/finadvisor/pkg/retry"
)

// Generator implements core.Generator on top of a chat provider. Every attempt
// is bounded by timeout; transient failures are retried with backoff.
type Generator struct {
	provider core.AIProvider
	retrier  *retry.Retrier
	timeout  time.Duration
}

func NewGenerator(provider core.AIProvider, retrier *retry.Retrier, timeout time.Duration) *Generator {
	if retrier == nil {
		retrier = retry.NewRetrier(&retry.Config{
			MaxRetries:    2,
			BackoffFactor: 2,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Jitter:        100 * time.Millisecond,
		})
	}
	return &Generator{
		provider: provider,
		retrier:  retrier,
		timeout:  timeout,
	}
}

// MaxDuration is the worst-case time of one Generate call.
func (g *Generator) MaxDuration() time.Duration {
	return g.retrier.Budget(g.timeout)
}

func (g *Generator) Generate(ctx context.Context, prompt []core.Message) (string, error) {
	var text string
	attempt := 0

	err := g.retrier.Do(ctx, func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		msg, err := g.provider.Chat(callCtx, prompt)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Int("attempt", attempt).Msg("generation attempt failed")
			var status *StatusError
			if errors.As(err, &status) && !status.Temporary() {
				return retry.Permanent(err)
			}
			return err
		}

		text = strings.TrimSpace(msg.Content)
		if text == "" {
			return retry.Permanent(errors.New("empty completion"))
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}
