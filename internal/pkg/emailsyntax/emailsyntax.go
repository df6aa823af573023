// Package emailsyntax holds the syntax predicates used to decide whether a
// string is a well-formed email address.
//
// Predicates only inspect the text. They never resolve domains or talk to mail
// servers, and they are safe for concurrent use.
package emailsyntax

import (
	"errors"
	"fmt"
	"sort"
)

// RuleSet names a grammar an address can be checked against.
type RuleSet string

const (
	// HTML5 is the WHATWG "valid e-mail address" grammar with IDNA domains.
	HTML5 RuleSet = "html5"
	// RFC5322 accepts a bare RFC 5322 addr-spec within RFC 5321 length limits.
	RFC5322 RuleSet = "rfc5322"
	// Simple only checks for a local part and a dotted domain.
	Simple RuleSet = "simple"
)

// Default is the rule set used when none is configured.
const Default = HTML5

// RFC 5321 section 4.5.3.1 size limits.
const (
	maxLocalPartLen = 64
	maxDomainLen    = 255
	maxAddressLen   = 254
)

// ErrUnknownRuleSet is returned by ForRuleSet for names it does not know.
var ErrUnknownRuleSet = errors.New("unknown email syntax rule set")

var predicates = map[RuleSet]func(string) bool{
	HTML5:   IsValidHTML5,
	RFC5322: IsValidRFC5322,
	Simple:  IsValidSimple,
}

// IsValid checks s against the default rule set.
func IsValid(s string) bool { return IsValidHTML5(s) }

// ForRuleSet returns the predicate for a rule set name.
// An empty name selects Default.
func ForRuleSet(name string) (func(string) bool, error) {
	if name == "" {
		name = string(Default)
	}
	fn, ok := predicates[RuleSet(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return fn, nil
}

// RuleSets lists the known rule set names in sorted order.
func RuleSets() []string {
	names := make([]string, 0, len(predicates))
	for rs := range predicates {
		names = append(names, string(rs))
	}
	sort.Strings(names)
	return names
}
