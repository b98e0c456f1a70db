// Package web serves the upload and camera page.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
)

//go:embed templates/index.html static
var content embed.FS

type pageData struct {
	EndpointURL string
}

// Handler serves "/" and the embedded assets under "/static/".
type Handler struct {
	page   []byte
	static http.Handler
}

// NewHandler renders the page once with the extraction endpoint URL the
// browser should post to.
func NewHandler(endpointURL string) (*Handler, error) {
	tmpl, err := template.ParseFS(content, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{EndpointURL: endpointURL}); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	assets, err := fs.Sub(content, "static")
	if err != nil {
		return nil, err
	}
	return &Handler{
		page:   buf.Bytes(),
		static: http.StripPrefix("/static/", http.FileServer(http.FS(assets))),
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/":
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(h.page); err != nil {
			log.Printf("write page: %v", err)
		}
	case strings.HasPrefix(r.URL.Path, "/static/"):
		h.static.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}
