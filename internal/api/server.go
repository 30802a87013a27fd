package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/ifedit/internal/archive"
	"github.com/dgallion1/ifedit/internal/config"
	"github.com/dgallion1/ifedit/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for ifedit.
type Server struct {
	router   chi.Router
	sessions *session.Store
	archive  *archive.Client
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *session.Store, arch *archive.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: store,
		archive:  arch,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.IfeditAPIKey, s.log))

		r.Post("/api/sessions", s.handleCreateSession)
		r.Get("/api/sessions", s.handleListSessions)
		r.Get("/api/sessions/{sessionID}", s.handleGetSession)
		r.Delete("/api/sessions/{sessionID}", s.handleDeleteSession)

		r.Put("/api/sessions/{sessionID}/view", s.handleSetView)
		r.Get("/api/sessions/{sessionID}/render", s.handleRender)
		r.Get("/api/sessions/{sessionID}/preview", s.handlePreview)
		r.Post("/api/sessions/{sessionID}/export", s.handleExport)

		r.Post("/api/sessions/{sessionID}/edits/insert", s.handleInsert)
		r.Post("/api/sessions/{sessionID}/edits/alternative", s.handleAlternative)
		r.Post("/api/sessions/{sessionID}/edits/delete-dimension", s.handleDeleteDimension)

		r.Post("/api/sessions/{sessionID}/buffer/edits", s.handleBufferEdit)
		r.Post("/api/sessions/{sessionID}/sync", s.handleSync)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
