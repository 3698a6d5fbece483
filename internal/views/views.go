package views

import "embed"

// TemplatesFS holds the HTML templates served by the handlers package.
//
//go:embed *.html
var TemplatesFS embed.FS
