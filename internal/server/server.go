// Package server exposes the block admin and region rendering endpoints over
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	nodeblock "github.com/goliatone/go-nodeblock"
	"github.com/goliatone/go-nodeblock/components/autocomplete"
	"github.com/goliatone/go-nodeblock/internal/app"
	"github.com/goliatone/go-nodeblock/internal/logging"
	"github.com/goliatone/go-nodeblock/pkg/apidoc"
	"github.com/goliatone/go-nodeblock/pkg/orchestrator"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to the wired application.
type Server struct {
	app    *app.App
	forms  *orchestrator.Orchestrator
	tokens *FormTokens
	logger zerolog.Logger
	apiDoc []byte
	router chi.Router
}

// New builds the router for a.
func New(ctx context.Context, a *app.App) (*Server, error) {
	if a == nil {
		return nil, errors.New("server: app is required")
	}
	doc, err := apidoc.Build(ctx, a.Catalog, apidoc.Info{Title: "nodeblock admin API"})
	if err != nil {
		return nil, fmt.Errorf("server: describe api: %w", err)
	}
	apiDoc, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("server: encode api description: %w", err)
	}

	s := &Server{
		app:    a,
		tokens: NewFormTokens(a.Config.HTTP.CSRFSecret),
		logger: logging.WithComponent(a.Logger, "http"),
		apiDoc: apiDoc,
	}
	s.forms = nodeblock.NewOrchestrator(a.Placements,
		orchestrator.WithRegistry(a.Renderers),
		orchestrator.WithFormTokens(s.tokens.Issue),
	)
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.app.Metrics, promhttp.HandlerOpts{}))
	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(s.apiDoc)
	})
	r.Handle(app.AssetsPath+"*", http.StripPrefix(app.AssetsPath, http.FileServerFS(nodeblock.RuntimeAssetsFS())))

	r.Get("/regions/{region}", s.renderRegion)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/plugins", s.listPlugins)
		r.Get("/regions", s.listRegions)
		r.Get("/regions/{region}/blocks", s.listRegionBlocks)
		r.Post("/regions/{region}/blocks", s.placeBlock)
		r.Get("/blocks/{id}", s.getBlock)
		r.Delete("/blocks/{id}", s.removeBlock)
		r.Get("/blocks/{id}/configure", s.blockForm)
		r.Post("/blocks/{id}/configure", s.configureBlock)
		r.Handle("/autocomplete/{entityType}", autocomplete.NewHandler(s.app.Nodes,
			autocomplete.WithEntityType(func(r *http.Request) string {
				return chi.URLParam(r, "entityType")
			}),
		))
	})
	return r
}
