package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFiles embed.FS

// NewFrontendHandler отдает встроенную оболочку SPA: /assets/* - статика,
// любой другой путь - index.html (маршрутизация на клиенте)
func NewFrontendHandler() (http.Handler, error) {
	root, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	index, err := fs.ReadFile(root, "index.html")
	if err != nil {
		return nil, err
	}
	assets := http.StripPrefix("/assets/", http.FileServer(http.FS(root)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/assets/") {
			name := strings.TrimPrefix(path.Clean(r.URL.Path), "/assets/")
			if name == "index.html" {
				http.NotFound(w, r)
				return
			}
			if _, err := fs.Stat(root, name); err != nil {
				http.NotFound(w, r)
				return
			}
			assets.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(index)
	}), nil
}
