package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases a display name and collapses everything that is not
// a letter or digit into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SlugCandidate returns the slug to try at a given collision attempt.
// Attempt 0 is the plain slug, attempt 1 yields "slug-1" and so on.
func SlugCandidate(slug string, attempt int) string {
	if attempt == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, attempt)
}
