package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/filippobenozzi/algodomo-bridge/internal/store"
)

// maxConfigBodySize bounds POST /api/config bodies to guard against an
// oversized upload blocking the request goroutine on a full parse.
const maxConfigBodySize = 512 * 1024

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.configStore.Get())
}

// handlePostConfig replaces the configuration wholesale. An empty body
// means "no change": it echoes the current configuration without writing.
func (s *Server) handlePostConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxConfigBodySize+1))
	if err != nil {
		writeBadRequest(w)
		return
	}
	if len(body) > maxConfigBodySize {
		writeBadRequest(w)
		return
	}
	if len(body) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "config": s.configStore.Get()})
		return
	}

	var raw store.RawConfiguration
	if err := json.Unmarshal(body, &raw); err != nil {
		writeBadRequest(w)
		return
	}

	cfg, err := s.configStore.Replace(raw)
	if err != nil {
		s.logger.Error("failed to persist configuration", "error", err)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "config": cfg})
}
