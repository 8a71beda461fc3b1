package application_test

import "regexp"

func matchSlug(pattern, slug string) bool {
	return regexp.MustCompile("(?i)" + pattern).MatchString(slug)
}
