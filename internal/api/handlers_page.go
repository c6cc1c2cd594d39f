package api

import (
	"bytes"
	"net/http"

	"github.com/dgallion1/docsite/internal/render"
	"github.com/dgallion1/docsite/internal/section"
)

// handleIndex renders the full page, with ?section=ref loaded into the content region.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var page *section.Page
	if ref := r.URL.Query().Get("section"); ref != "" {
		page = s.loader.Load(r.Context(), ref)
	}

	view := render.View{
		State:         sess.State(),
		Topics:        s.site.Topics(),
		Page:          page,
		ReducedMotion: s.monitor.ReducedMotion(),
		FrameTimeout:  s.cfg.FrameLoadTimeout,
	}
	if s.cfg.ContentDir != "" {
		view.FrameBase = FramePrefix
	}

	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, view); err != nil {
		s.log.Error("page render failed", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
