package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/ifedit/internal/archive"
	"github.com/dgallion1/ifedit/internal/iftree"
	"github.com/dgallion1/ifedit/internal/preview"
)

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var body struct {
		Selectors []iftree.Selector `json:"selectors"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	for _, sel := range body.Selectors {
		if sel.Name == "" {
			jsonError(w, "selector name is required", http.StatusBadRequest)
			return
		}
		if !sel.Status.Valid() {
			jsonError(w, "selector status must be BOTH, DEF or NDEF", http.StatusBadRequest)
			return
		}
	}

	text := sess.SetView(body.Selectors)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"text":       text,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	mode := r.URL.Query().Get("mode")
	var text string
	switch mode {
	case "", "visible":
		mode = "visible"
		text = sess.RenderVisible()
	case "canonical":
		text = sess.RenderCanonical()
	default:
		jsonError(w, "mode must be visible or canonical", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"mode":       mode,
		"text":       text,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	fragment, err := preview.HTML(sess.RenderVisible())
	if err != nil {
		jsonError(w, "preview failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(fragment))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	if !s.archive.Enabled() {
		jsonError(w, "no archive configured", http.StatusServiceUnavailable)
		return
	}

	info := sess.Snapshot()
	entry := archive.Entry{
		Filename:   info.Filename,
		Content:    sess.RenderCanonical(),
		RenderedAt: info.UpdatedAt,
	}
	if err := s.archive.Put(r.Context(), sess.ID, entry); err != nil {
		s.log.Error("export failed", "session_id", sess.ID, "error", err)
		jsonError(w, "export failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.log.Info("session exported", "session_id", sess.ID, "filename", info.Filename)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"exported": sess.ID})
}
