// Package phone finds Russian phone numbers in raw page HTML.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

// patterns are tried in order; the first one whose leftmost match captures
// exactly ten digits wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\+7\s?\(?(\d{3})\)?\s?(\d{3})[\s-]?(\d{2})[\s-]?(\d{2})`),
	regexp.MustCompile(`8\s?\(?(\d{3})\)?\s?(\d{3})[\s-]?(\d{2})[\s-]?(\d{2})`),
	regexp.MustCompile(`\+7(\d{10})`),
	regexp.MustCompile(`8(\d{10})`),
}

// Find returns the first phone number in html in canonical form, or "" when
// no pattern matches. Only the first match of each pattern is considered.
func Find(html string) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		digits := strings.Join(m[1:], "")
		if len(digits) == 10 {
			return Format(digits)
		}
	}
	return ""
}

// Format renders ten subscriber digits as "+7 (XXX) XXX-XX-XX". Any other
// length is returned unchanged.
func Format(digits string) string {
	if len(digits) != 10 {
		return digits
	}
	return fmt.Sprintf("+7 (%s) %s-%s-%s", digits[:3], digits[3:6], digits[6:8], digits[8:])
}
