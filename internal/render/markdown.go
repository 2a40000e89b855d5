// Package render turns a post's markdown source into HTML safe to display.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var policy = bluemonday.UGCPolicy()

// Markdown converts markdown source to sanitized HTML. It is pure and local:
// no network access and no mutation of the post being previewed.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}
