package domain

import (
	"fmt"
	"regexp"
	"strings"

	gslug "github.com/gosimple/slug"
)

const fallbackSlug = "store"

// Slugify derives a lowercase, hyphenated identifier containing only [a-z0-9-].
func Slugify(name string) string {
	s := strings.ToLower(gslug.Make(name))
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, s)
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '-' }), "-")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// SlugPattern matches base and its numbered variants, e.g. "pizza", "pizza-2".
func SlugPattern(base string) string {
	return "^(" + regexp.QuoteMeta(base) + ")(-[0-9]*)?$"
}

// SlugCandidate returns base when nothing is taken, otherwise base-(taken+1).
func SlugCandidate(base string, taken int) string {
	if taken <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, taken+1)
}
