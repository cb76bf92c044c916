// Package htmlsanitize strips markup from free-text fields submitted by
// schools and visitors before they are stored. Application text is later
// rendered by the coordinator frontend, so nothing executable may survive.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize removes all HTML from s, leaving plain text.
func Sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// SanitizeAll sanitizes each of the given strings in place.
func SanitizeAll(fields ...*string) {
	for _, f := range fields {
		*f = Sanitize(*f)
	}
}
