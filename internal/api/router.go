package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter assembles the fixed route table. There is no dynamic
// registration: every route named by the external interface is wired here,
// and nothing else is.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Get("/", s.handleRoot)
	r.Get("/control", s.handleControlPage)
	r.Get("/config", s.handleConfigPage)
	r.Get("/health", s.handleHealth)
	r.Get("/favicon.ico", s.handleFavicon)

	r.Get("/api/config", s.handleGetConfig)
	r.Post("/api/config", s.handlePostConfig)

	r.Group(func(r chi.Router) {
		r.Use(s.tokenGateMiddleware)

		r.Get("/api/status", s.handleStatus)
		r.Get("/api/cmd/light", s.handleCmdLight)
		r.Get("/api/cmd/shutter", s.handleCmdShutter)
		r.Get("/api/cmd/thermostat", s.handleCmdThermostat)
		r.Get("/api/cmd/poll", s.handleCmdPoll)
		r.Get("/api/cmd/apply-inputs", s.handleCmdApplyInputs)
		r.Get("/api/cmd/program-address", s.handleCmdProgramAddress)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) { writeNotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { writeMethodNotAllowed(w) })

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/control", http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
