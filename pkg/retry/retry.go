package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sandevgo/finadvisor/pkg/log"
)

type Operation = func() error

// Config describes an exponential backoff. A zero MaxDelay leaves the delay
// uncapped.
type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2,
		InitialDelay:  400 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as final. Do stops and returns the unwrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var perm *permanentError
	return errors.As(err, &perm)
}

type Retrier struct {
	config Config
}

func NewRetrier(config *Config) *Retrier {
	if config == nil {
		config = NewDefaultConfig()
	}
	return &Retrier{config: *config}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(nil)
}

// Delay is the wait before retry number attempt (starting at 0), without jitter.
func (r *Retrier) Delay(attempt int) time.Duration {
	d := float64(r.config.InitialDelay)
	for range attempt {
		d *= r.config.BackoffFactor
		if r.config.MaxDelay > 0 && d >= float64(r.config.MaxDelay) {
			return r.config.MaxDelay
		}
	}
	return time.Duration(d)
}

// Budget is the longest time Do can take when every attempt runs for
// attemptTimeout and all retries are used.
func (r *Retrier) Budget(attemptTimeout time.Duration) time.Duration {
	total := time.Duration(r.config.MaxRetries+1) * attemptTimeout
	for i := range r.config.MaxRetries {
		total += r.Delay(i) + r.config.Jitter
	}
	return total
}

// Do runs op until it succeeds, fails permanently, exhausts MaxRetries or ctx
// is done. The last operation error is returned.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= r.config.MaxRetries {
			return err
		}

		wait := r.Delay(attempt)
		if r.config.Jitter > 0 {
			wait += rand.N(r.config.Jitter)
		}
		log.FromCtx(ctx).Debug().Err(err).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Msg("operation failed, retrying")

		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), err)
		case <-time.After(wait):
		}
	}
}
