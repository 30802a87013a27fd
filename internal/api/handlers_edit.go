package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/ifedit/internal/iftree"
	"github.com/dgallion1/ifedit/internal/session"
)

// dimensionSpec describes a new conditional region to insert.
type dimensionSpec struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"` // "ifdef" or "ifndef"
	Text     string `json:"text"`
	ElseText string `json:"else_text"`
}

func (d dimensionSpec) segment() (iftree.Segment, error) {
	kind := iftree.Positive
	switch d.Kind {
	case "", "ifdef":
	case "ifndef":
		kind = iftree.Contrapositive
	default:
		return nil, errors.New("dimension kind must be ifdef or ifndef")
	}
	if d.Name == "" {
		return nil, errors.New("dimension name is required")
	}
	els := &iftree.RegionNode{}
	if d.ElseText != "" {
		els.Segments = []iftree.Segment{&iftree.ContentNode{Content: d.ElseText}}
	}
	return &iftree.ChoiceNode{
		Name: d.Name,
		Kind: kind,
		Then: &iftree.RegionNode{Segments: []iftree.Segment{&iftree.ContentNode{Content: d.Text}}},
		Else: els,
	}, nil
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var body struct {
		Pos       iftree.Pos     `json:"pos"`
		Text      *string        `json:"text"`
		Dimension *dimensionSpec `json:"dimension"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var seg iftree.Segment
	switch {
	case body.Dimension != nil:
		var err error
		if seg, err = body.Dimension.segment(); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	case body.Text != nil:
		seg = &iftree.ContentNode{Content: *body.Text}
	default:
		jsonError(w, "text or dimension is required", http.StatusBadRequest)
		return
	}

	if err := sess.Insert(body.Pos, seg); err != nil {
		jsonError(w, "insert failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.respondWithView(w, sess)
}

func (s *Server) handleAlternative(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var body struct {
		Pos    iftree.Pos    `json:"pos"`
		Text   string        `json:"text"`
		Branch iftree.Branch `json:"branch"`
		Name   string        `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Branch != iftree.ThenBranch && body.Branch != iftree.ElseBranch {
		jsonError(w, "branch must be then or else", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	seg := &iftree.ContentNode{Content: body.Text}
	if err := sess.InsertAlternative(body.Pos, seg, body.Branch, body.Name); err != nil {
		if errors.Is(err, iftree.ErrAlternativeExists) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, "alternative insert failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.respondWithView(w, sess)
}

func (s *Server) handleDeleteDimension(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var sel iftree.Selector
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if sel.Name == "" {
		jsonError(w, "name is required", http.StatusBadRequest)
		return
	}
	if sel.Status == "" {
		sel.Status = iftree.StatusBoth
	}
	if !sel.Status.Valid() {
		jsonError(w, "status must be BOTH, DEF or NDEF", http.StatusBadRequest)
		return
	}

	sess.DeleteDimension(sel)
	s.respondWithView(w, sess)
}

func (s *Server) handleBufferEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var body struct {
		Op   string      `json:"op"` // "insert", "delete" or "replace"
		Pos  iftree.Pos  `json:"pos"`
		Span iftree.Span `json:"span"`
		Text string      `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	switch body.Op {
	case "insert":
		err = sess.BufferInsert(body.Pos, body.Text)
	case "delete":
		err = sess.BufferDelete(body.Span)
	case "replace":
		err = sess.BufferReplace(body.Span, body.Text)
	default:
		jsonError(w, "op must be insert, delete or replace", http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonError(w, "buffer edit failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"text":       sess.BufferText(),
	})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	if err := sess.Sync(); err != nil {
		jsonError(w, "sync failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.respondWithView(w, sess)
}

func (s *Server) respondWithView(w http.ResponseWriter, sess *session.Session) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"text":       sess.RenderVisible(),
	})
}
