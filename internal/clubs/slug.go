package clubs

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// slugWithSuffix disambiguates a taken slug with a short random suffix.
func slugWithSuffix(base string) string {
	return base + "-" + uuid.NewString()[:8]
}
