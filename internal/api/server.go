package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/perf"
	"github.com/dgallion1/docsite/internal/render"
	"github.com/dgallion1/docsite/internal/section"
	"github.com/dgallion1/docsite/internal/session"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// FramePrefix is where raw content files are served for topic frames.
const FramePrefix = "/docs/"

// Server is the HTTP server for the documentation site.
type Server struct {
	router   chi.Router
	site     *site.Site
	loader   *section.Loader
	sessions *session.Store
	monitor  *perf.Monitor
	renderer *render.Renderer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *site.Site, loader *section.Loader, sessions *session.Store, monitor *perf.Monitor, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		site:     st,
		loader:   loader,
		sessions: sessions,
		monitor:  monitor,
		renderer: renderer,
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
	r.Use(middleware.RealIP)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.CORSAllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))
	r.Use(RequestLogger(s.log))

	// Stateless endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/api/metrics", s.handleMetrics)
	r.Get("/api/sections", s.handleListSections)
	r.Get("/api/sections/*", s.handleLoadSection)
	if s.cfg.ContentDir != "" {
		r.Handle(FramePrefix+"*", http.StripPrefix(FramePrefix, http.FileServer(http.Dir(s.cfg.ContentDir))))
	}

	// Session-scoped endpoints.
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(s.sessions, s.site, s.log))

		r.Get("/", s.handleIndex)
		r.Get("/api/state", s.handleState)
		r.Post("/api/events", s.handleEvent)
		r.Get("/api/topics", s.handleTopics)
		r.Post("/api/topics/{topic}", s.handleSelectTopic)
		r.Post("/api/theme", s.handleThemeToggle)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
