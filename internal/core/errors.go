package core

import (
	"errors"
	"fmt"
)

var (
	// ErrRetrievalUnavailable marks a retrieval fault or timeout. The advisor
	// degrades to an answer without context instead of failing.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrGenerationFailed marks a failed narrative generation.
	ErrGenerationFailed = errors.New("unable to generate advisory text")
)

// InvalidInputError reports a request that violates a domain invariant.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
