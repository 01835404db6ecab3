package render

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// Markdown converts markdown source to HTML for embedding in a page
// template. Used for the static about page content.
func Markdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
