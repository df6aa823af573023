package emailsyntax

import (
	"net/netip"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

var (
	localPartRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+$")
	domainRegex    = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// IsValidHTML5 reports whether s is a valid e-mail address under the WHATWG
// HTML grammar. The address is split on its last '@'. The domain may be a
// hostname, an internationalized hostname, or a bracketed IP literal such as
// "user@[192.0.2.1]". An RFC 5321 "IPv6:" tag inside the brackets is also
// accepted. Input that is not valid UTF-8 is always rejected.
func IsValidHTML5(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if len(local) == 0 || len(local) > maxLocalPartLen {
		return false
	}
	if len(domain) == 0 || len(domain) > maxDomainLen {
		return false
	}
	if !localPartRegex.MatchString(local) {
		return false
	}
	return validDomain(domain)
}

// validDomain expects valid UTF-8.
func validDomain(domain string) bool {
	if domainRegex.MatchString(domain) {
		return validPunycode(domain)
	}
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		return validIPLiteral(domain[1 : len(domain)-1])
	}
	// Internationalized names have to survive the IDNA lookup profile and
	// still be a plain LDH hostname afterwards.
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil || len(ascii) > maxDomainLen {
		return false
	}
	return domainRegex.MatchString(ascii)
}

// validPunycode rejects LDH names whose "xn--" labels do not decode.
func validPunycode(domain string) bool {
	if !strings.Contains(strings.ToLower(domain), "xn--") {
		return true
	}
	_, err := idna.Lookup.ToUnicode(domain)
	return err == nil
}

func validIPLiteral(lit string) bool {
	if v6, ok := strings.CutPrefix(lit, "IPv6:"); ok {
		addr, err := netip.ParseAddr(v6)
		return err == nil && addr.Is6() && addr.Zone() == ""
	}
	addr, err := netip.ParseAddr(lit)
	return err == nil && addr.Zone() == ""
}
