// Package emailgen generates plausible, well-formed synthetic subscriber
// addresses for property tests. Every address lives on a domain reserved by
// RFC 2606, so nothing generated here can reach a real mailbox.
package emailgen

import (
	"fmt"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// Seed is the fixed seed property runs start from. A failing run prints the
// seed it used, so it can be replayed by passing it to Parameters.
const Seed int64 = 20240613

// MinSuccessfulTests is the number of samples a property must pass.
const MinSuccessfulTests = 500

var (
	firstNames = []interface{}{
		"ursula", "le", "guin", "ada", "grace", "alan", "edsger", "barbara",
		"linus", "ken", "rob", "margaret", "dennis", "frances", "john", "kathleen",
	}
	lastNames = []interface{}{
		"hopper", "lovelace", "turing", "dijkstra", "liskov", "torvalds",
		"thompson", "pike", "hamilton", "ritchie", "allen", "mccarthy", "booth",
	}
	separators = []interface{}{"", ".", "_", "-", "+"}
	domains    = []interface{}{"example.com", "example.net", "example.org"}
)

// Parameters returns gopter parameters seeded with seed and sized for
// MinSuccessfulTests samples.
func Parameters(seed int64) *gopter.TestParameters {
	params := gopter.DefaultTestParametersWithSeed(seed)
	params.MinSuccessfulTests = MinSuccessfulTests
	return params
}

// SafeEmail generates addresses shaped like "first.last42@example.com".
func SafeEmail() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(firstNames...),
		gen.OneConstOf(separators...),
		gen.OneConstOf(lastNames...),
		gen.IntRange(-1, 9999),
		gen.OneConstOf(domains...),
	).Map(func(values []interface{}) string {
		return join(
			values[0].(string),
			values[1].(string),
			values[2].(string),
			values[3].(int),
			values[4].(string),
		)
	})
}

// Username generates a bare local part in the same shape SafeEmail uses.
func Username() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(firstNames...),
		gen.OneConstOf(separators...),
		gen.OneConstOf(lastNames...),
	).Map(func(values []interface{}) string {
		return values[0].(string) + values[1].(string) + values[2].(string)
	})
}

// A negative suffix means no digits are appended.
func join(first, sep, last string, suffix int, domain string) string {
	var b strings.Builder
	b.WriteString(first)
	b.WriteString(sep)
	b.WriteString(last)
	if suffix >= 0 {
		fmt.Fprintf(&b, "%d", suffix)
	}
	b.WriteByte('@')
	b.WriteString(domain)
	return b.String()
}
