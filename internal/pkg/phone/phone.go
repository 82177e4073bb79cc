package phone

import (
	"regexp"
	"strings"
)

// Accepted formats. Turkish numbers may arrive spaced ("+90 5XX XXX XX XX"),
// compact ("+905XXXXXXXXX") or with a leading zero ("05XXXXXXXXX"); a few
// other country prefixes and a generic E.164 pattern cover the rest.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+90\s5[0-9]{2}\s[0-9]{3}\s[0-9]{2}\s[0-9]{2}$`), // +90 5XX XXX XX XX
	regexp.MustCompile(`^\+905[0-9]{9}$`),                                 // +905XXXXXXXXX
	regexp.MustCompile(`^05[0-9]{9}$`),                                    // 05XXXXXXXXX
	regexp.MustCompile(`^\+1[0-9]{10}$`),                                  // US
	regexp.MustCompile(`^\+49[0-9]{10,11}$`),                              // DE
	regexp.MustCompile(`^\+44[0-9]{10}$`),                                 // UK
	regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`),                            // generic E.164
}

// Valid reports whether the raw number matches a supported format.
func Valid(raw string) bool {
	for _, p := range patterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}

// Canonical normalizes a raw phone number to one compact international form
// ("+905321234567"). It is applied at every storage and lookup boundary so a
// number never exists under two representations.
func Canonical(raw string) string {
	s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)
	switch {
	case strings.HasPrefix(s, "0"):
		return "+90" + s[1:]
	case strings.HasPrefix(s, "+"):
		return s
	default:
		return "+" + s
	}
}

// Language guesses the notification language from the country prefix.
// Turkish numbers get "tr", US "en", Gulf-state prefixes "ar", anything
// else "en".
func Language(number string) string {
	switch {
	case strings.HasPrefix(number, "+90") || strings.HasPrefix(number, "0"):
		return "tr"
	case strings.HasPrefix(number, "+1"):
		return "en"
	case strings.HasPrefix(number, "+966"), strings.HasPrefix(number, "+971"), strings.HasPrefix(number, "+973"):
		return "ar"
	default:
		return "en"
	}
}
