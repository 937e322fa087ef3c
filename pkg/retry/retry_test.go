package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(retries int) *Retrier {
	return NewRetrier(&Config{
		MaxRetries:    retries,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      4 * time.Millisecond,
	})
}

func TestDo_FirstAttempt(t *testing.T) {
	calls := 0
	err := fast(3).Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversFromTransientFailures(t *testing.T) {
	calls := 0
	err := fast(3).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("upstream 503")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	upstream := errors.New("upstream 503")
	calls := 0
	err := fast(2).Do(context.Background(), func() error {
		calls++
		return upstream
	})
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	notFound := errors.New("symbol not found")
	calls := 0
	err := fast(5).Do(context.Background(), func() error {
		calls++
		return Permanent(notFound)
	})
	assert.Equal(t, notFound, err)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	r := NewRetrier(&Config{MaxRetries: 5, BackoffFactor: 1, InitialDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	upstream := errors.New("timeout")

	calls := 0
	err := r.Do(ctx, func() error {
		calls++
		cancel()
		return upstream
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 1, calls)
}

func TestDelay_GrowsAndCaps(t *testing.T) {
	r := fast(5)
	assert.Equal(t, time.Millisecond, r.Delay(0))
	assert.Equal(t, 2*time.Millisecond, r.Delay(1))
	assert.Equal(t, 4*time.Millisecond, r.Delay(2))
	assert.Equal(t, 4*time.Millisecond, r.Delay(6))

	uncapped := NewRetrier(&Config{BackoffFactor: 3, InitialDelay: time.Second})
	assert.Equal(t, 9*time.Second, uncapped.Delay(2))
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	base := errors.New("bad request")
	err := Permanent(base)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bad request", err.Error())
}

func TestBudget(t *testing.T) {
	r := NewRetrier(&Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  100 * time.Millisecond,
		Jitter:        10 * time.Millisecond,
	})
	// 3 attempts of 1s, waits of 110ms and 210ms
	assert.Equal(t, 3*time.Second+320*time.Millisecond, r.Budget(time.Second))

	assert.Equal(t, time.Second, NewRetrier(&Config{}).Budget(time.Second))
}
