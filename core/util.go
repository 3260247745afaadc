package core

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanNullString trims a nullable string; blank values become null.
func CleanNullString(s null.String) null.String {
	if !s.Valid {
		return s
	}
	str := strings.TrimSpace(s.String)
	return null.NewString(str, str != "")
}
