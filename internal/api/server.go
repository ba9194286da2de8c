package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"deckgen/internal/config"
)

// Server is the HTTP tool server: it exposes deck building and spreadsheet
// parsing as callable endpoints.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    config.Server
}

// NewServer creates and configures the HTTP server.
func NewServer(log *slog.Logger, cfg config.Server) *Server {
	s := &Server{
		log: log,
		cfg: cfg,
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
		r.Use(AuthMiddleware(s.cfg.DeckgenAPIKey, s.log))

		r.Post("/api/decks", s.handleBuildDeck)
		r.Post("/api/parse", s.handleParseSheet)

		r.Get("/api/customers", s.handleListCustomers)
		r.Get("/api/customers/{customer}/requirements", s.handleGetRequirements)
		r.Post("/api/customers/{customer}/deck", s.handleBuildCustomerDeck)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
