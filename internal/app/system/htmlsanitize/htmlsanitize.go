// Package htmlsanitize strips markup from user-generated text before it is
// persisted. Recommendation, chat, and feedback text are plain text in this
// product; anything that looks like HTML is content, not markup, and tags
// are removed outright.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML tags from s, decodes entities the sanitizer
// introduced, and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
