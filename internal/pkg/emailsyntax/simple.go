package emailsyntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidSimple is a light guardrail. It is not an RFC validator: it catches
// empty input, a missing '@', an empty local part, whitespace, invalid UTF-8
// and a domain without a dot, with an empty label, or with brackets.
// Local-only addresses such as "admin@localhost" are rejected.
func IsValidSimple(s string) bool {
	if len(s) < 5 || len(s) > maxAddressLen || !utf8.ValidString(s) {
		return false
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at < 1 || at >= len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if strings.Contains(domain, "..") || strings.ContainsAny(domain, "[]") {
		return false
	}
	return strings.Contains(domain, ".")
}
