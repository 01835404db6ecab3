// Package web carries the embedded template and content assets served by
// the TIL server.
package web

import "embed"

// FS embeds the HTML templates and static markdown content.
//
//go:embed templates/*.html about.md
var FS embed.FS
