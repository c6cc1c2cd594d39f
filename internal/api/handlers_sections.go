package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docsite/internal/perf"
	"github.com/go-chi/chi/v5"
)

// handleListSections lists the section references the sources can serve.
func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	refs, err := s.loader.List()
	if err != nil {
		jsonError(w, "failed to list sections: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if refs == nil {
		refs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": refs})
}

// handleLoadSection loads one section. A failed load is still a 200: the
// page then carries the error markup and an empty outline.
func (s *Server) handleLoadSection(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "*")
	if ref == "" {
		jsonError(w, "section reference is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.loader.Load(r.Context(), ref))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Metrics  perf.Metrics `json:"metrics"`
		Sessions int          `json:"sessions"`
	}{s.monitor.Snapshot(), s.sessions.Len()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
