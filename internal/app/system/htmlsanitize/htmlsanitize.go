// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans user-submitted text before it is stored.
// Problem descriptions arrive from the reporting form as free text; any
// markup in them is either neutralized (Sanitize) or removed outright
// (StripTags).
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps basic formatting (paragraphs, emphasis, lists, links)
// and strips everything executable: scripts, event handlers,
// javascript: URLs, iframes, forms.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// StripTags removes all markup, leaving only the text content. Used for
// fields that are stored and displayed as plain text, like room problem
// descriptions.
func StripTags(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
