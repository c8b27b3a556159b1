package core

import "strings"

// CleanString trims surrounding whitespace from s. When lower is true the
// result is also lowercased, which is how emails are normalized before
// storage and lookups.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
