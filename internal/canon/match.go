package canon

import (
	"regexp"
	"strings"
)

// MatchError returns the signatures whose error pattern matches the
// given error text, case-insensitively. A signature whose pattern is
// not a valid regex falls back to a case-insensitive substring match,
// so one bad pattern in the corpus cannot hide the rest.
func MatchError(errorText string, sigs []Signature) []Signature {
	var matches []Signature
	for _, sig := range sigs {
		re, err := regexp.Compile("(?i)" + sig.ErrorPattern)
		if err != nil {
			if strings.Contains(strings.ToLower(errorText), strings.ToLower(sig.ErrorPattern)) {
				matches = append(matches, sig)
			}
			continue
		}
		if re.MatchString(errorText) {
			matches = append(matches, sig)
		}
	}
	return matches
}
