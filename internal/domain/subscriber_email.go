package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/iamlucasvieira/zero2prod/internal/pkg/emailsyntax"
)

// SyntaxPredicate decides whether a string is a syntactically valid email
// address. Implementations must be deterministic and free of side effects.
type SyntaxPredicate interface {
	Valid(s string) bool
}

// SyntaxPredicateFunc adapts a plain function to SyntaxPredicate.
type SyntaxPredicateFunc func(s string) bool

// Valid calls f(s).
func (f SyntaxPredicateFunc) Valid(s string) bool { return f(s) }

// SubscriberEmail is an email address that passed the syntax check when it
// was built. It cannot be changed afterwards; a different address needs a new
// value.
//
// The zero value holds no address and is never returned by a successful
// Parse. Use IsZero to detect it.
type SubscriberEmail struct {
	value string
}

// SubscriberEmailParser builds SubscriberEmail values with a fixed predicate.
// It is safe for concurrent use when its predicate is. A nil or zero-value
// parser checks with the default HTML5 rule set.
type SubscriberEmailParser struct {
	syntax SyntaxPredicate
}

var defaultParser = NewSubscriberEmailParser(nil)

// NewSubscriberEmailParser returns a parser that checks addresses with syntax.
// A nil predicate, including a nil SyntaxPredicateFunc, selects the default
// HTML5 rule set.
func NewSubscriberEmailParser(syntax SyntaxPredicate) *SubscriberEmailParser {
	if fn, ok := syntax.(SyntaxPredicateFunc); ok && fn == nil {
		syntax = nil
	}
	return &SubscriberEmailParser{syntax: syntax}
}

var defaultSyntax SyntaxPredicate = SyntaxPredicateFunc(emailsyntax.IsValid)

func (p *SubscriberEmailParser) predicate() SyntaxPredicate {
	if p == nil || p.syntax == nil {
		return defaultSyntax
	}
	return p.syntax
}

// Parse returns s wrapped as a SubscriberEmail, byte for byte, when the
// predicate accepts it. Otherwise it returns a *ValidationError.
func (p *SubscriberEmailParser) Parse(s string) (SubscriberEmail, error) {
	if !p.predicate().Valid(s) {
		return SubscriberEmail{}, &ValidationError{Input: s}
	}
	return SubscriberEmail{value: s}, nil
}

// ParseSubscriberEmail checks s against the default rule set.
func ParseSubscriberEmail(s string) (SubscriberEmail, error) {
	return defaultParser.Parse(s)
}

// String returns the address exactly as it was given to Parse.
func (e SubscriberEmail) String() string { return e.value }

// IsZero reports whether e is the zero value.
func (e SubscriberEmail) IsZero() bool { return e.value == "" }

// MarshalJSON encodes the address as a JSON string.
func (e SubscriberEmail) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return nil, &ValidationError{}
	}
	return json.Marshal(e.value)
}

// UnmarshalJSON decodes a JSON string and validates it with the default rule
// set. e is left untouched when the address is rejected.
func (e *SubscriberEmail) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("subscriber email: %w", err)
	}
	parsed, err := ParseSubscriberEmail(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Value implements driver.Valuer.
func (e SubscriberEmail) Value() (driver.Value, error) {
	if e.IsZero() {
		return nil, &ValidationError{}
	}
	return e.value, nil
}

// Scan implements sql.Scanner. Stored addresses are validated again with
// the default rule set, so rows written by other tools cannot bypass it.
func (e *SubscriberEmail) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return fmt.Errorf("subscriber email: cannot scan NULL")
	default:
		return fmt.Errorf("subscriber email: cannot scan %T", src)
	}
	parsed, err := ParseSubscriberEmail(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
