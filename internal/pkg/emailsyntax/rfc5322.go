package emailsyntax

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// IsValidRFC5322 reports whether s is a bare RFC 5322 addr-spec. The parsed
// address must equal s exactly, so display names, angle brackets, comments,
// quoted local parts and surrounding whitespace are all rejected. The domain
// must also pass the same hostname, IP literal and IDNA checks as IsValidHTML5.
func IsValidRFC5322(s string) bool {
	if len(s) > maxAddressLen || !utf8.ValidString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at > maxLocalPartLen || at >= len(s)-1 {
		return false
	}
	return validDomain(s[at+1:])
}
