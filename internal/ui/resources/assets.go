// Package resources serves the dashboard's embedded static assets.
package resources

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// Stylesheet is the dashboard stylesheet, relative to the static root.
const Stylesheet = "dashboard.css"

// Handler returns an HTTP handler for files under /static/.
// Outside dev mode assets are cached aggressively; in dev mode the browser
// must revalidate so stylesheet edits show up after a rebuild.
func Handler(isDev bool) http.Handler {
	fsys, _ := fs.Sub(staticFS, "static")
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		}
		fileServer.ServeHTTP(w, r)
	})
}

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
