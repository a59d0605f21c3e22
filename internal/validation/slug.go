package validation

import "regexp"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s matches the lowercase-hyphen slug pattern.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
