package api

import (
	"net/http"
	"os"
)

// handleControlPage and handleConfigPage serve the two static HTML pages
// from disk. Their content is produced by a separate front-end build; the
// handler only does the serving.
func (s *Server) handleControlPage(w http.ResponseWriter, r *http.Request) {
	serveStaticPage(w, s.controlPage)
}

func (s *Server) handleConfigPage(w http.ResponseWriter, r *http.Request) {
	serveStaticPage(w, s.configPage)
}

func serveStaticPage(w http.ResponseWriter, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		writeNotFound(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
