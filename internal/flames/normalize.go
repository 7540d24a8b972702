package flames

import (
	"slices"
	"strings"
)

// Normalize lowercases name and strips the space character.
// Tabs, newlines and punctuation are left in place.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// Cancel removes the letters a and b have in common, one occurrence for one
// occurrence, and returns the reduced copies. The inputs are not modified.
func Cancel(a, b []rune) ([]rune, []rune) {
	ra := slices.Clone(a)
	rb := slices.Clone(b)

	for _, r := range a {
		j := slices.Index(rb, r)
		if j < 0 {
			continue
		}
		i := slices.Index(ra, r)
		ra = slices.Delete(ra, i, i+1)
		rb = slices.Delete(rb, j, j+1)
	}

	return ra, rb
}
