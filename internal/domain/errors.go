package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is the single reason a subscriber email can be rejected.
var ErrInvalidFormat = errors.New("invalid subscriber email format")

// ValidationError reports input that failed the email syntax check.
// The message embeds the rejected input so it can be shown back to the user.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is not a valid subscriber email.", e.Input)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidFormat).
func (e *ValidationError) Unwrap() error { return ErrInvalidFormat }
