package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dataclaw/app"
	"dataclaw/internal"
)

// Server exposes the three tools over HTTP as the local process transport
type Server struct {
	router  *chi.Mux
	toolset *app.Toolset
	log     *internal.Logger
}

// Config holds server configuration
type Config struct {
	Port string
}

// NewServer creates the HTTP host around a wired toolset
func NewServer(toolset *app.Toolset) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		toolset: toolset,
		log:     internal.DefaultLogger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(5 * time.Minute))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/tools", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/clean", s.handleClean)
		r.Post("/info", s.handleInfo)
	})
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is canceled
func (s *Server) ListenAndServe(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("[Server] listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
