package filter

import (
	"regexp"
	"strings"
	"unicode"
)

// Israeli numbers are the only region with multi-format equivalence:
// "+972501234567", "972501234567" and "0501234567" all identify the same
// subscriber. Every other identifier shape matches literally.
const countryCode = "972"

var (
	intlPlusShape = regexp.MustCompile(`^\+972\d{8,9}$`)
	intlShape     = regexp.MustCompile(`^972\d{8,9}$`)
	domesticShape = regexp.MustCompile(`^0\d{8,9}$`)
)

// Variants returns every representation the given phone-like identifier
// could appear as. Non-phone identifiers (and foreign numbers) come back
// as a single cleaned element, i.e. exact-match semantics.
func Variants(identifier string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, identifier)

	switch {
	case intlPlusShape.MatchString(cleaned):
		intl := cleaned[1:]
		return []string{cleaned, intl, "0" + intl[len(countryCode):]}
	case intlShape.MatchString(cleaned):
		return []string{"+" + cleaned, cleaned, "0" + cleaned[len(countryCode):]}
	case domesticShape.MatchString(cleaned):
		intl := countryCode + cleaned[1:]
		return []string{"+" + intl, intl, cleaned}
	default:
		return []string{cleaned}
	}
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
