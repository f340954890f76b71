// Package assets embeds the single-page client: the HTML template, the
// script that applies views and effects, and the stylesheet.
package assets

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed web
var FS embed.FS

// Page parses the index template.
func Page() (*template.Template, error) {
	return template.ParseFS(FS, "web/index.html")
}

// Static serves app.js, style.css and friends from the embedded tree.
func Static() http.Handler {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		// web is embedded at build time; fs.Sub only fails on a bad path.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
