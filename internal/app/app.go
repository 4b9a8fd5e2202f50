// Package app is the composition root shared by the server and CLI. It turns
// a resolved config.Config into the stores, plugin catalog and renderers the
// block plugins run on.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	nodeblock "github.com/goliatone/go-nodeblock"
	"github.com/goliatone/go-nodeblock/internal/config"
	"github.com/goliatone/go-nodeblock/internal/logging"
	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/blocks"
	"github.com/goliatone/go-nodeblock/pkg/displaymode"
	"github.com/goliatone/go-nodeblock/pkg/orchestrator"
	"github.com/goliatone/go-nodeblock/pkg/placement"
	"github.com/goliatone/go-nodeblock/pkg/region"
	"github.com/goliatone/go-nodeblock/pkg/render"
	"github.com/goliatone/go-nodeblock/pkg/renderers/tui"
	"github.com/goliatone/go-nodeblock/pkg/renderers/vanilla"
	"github.com/goliatone/go-nodeblock/pkg/storage/sqlite"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

// AssetsPath is where the HTTP host mounts RuntimeAssetsFS.
const AssetsPath = "/assets/"

// Option customises construction.
type Option func(*options)

type options struct {
	logger     *zerolog.Logger
	tuiOptions []tui.Option
	registerer *prometheus.Registry
}

// WithLogger replaces the logger built from cfg.Log.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithTUIOptions configures the terminal form renderer, typically to inject a
// prompt driver.
func WithTUIOptions(opts ...tui.Option) Option {
	return func(o *options) {
		o.tuiOptions = append(o.tuiOptions, opts...)
	}
}

// WithMetricsRegistry records metrics on reg instead of a fresh registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// App holds the wired services.
type App struct {
	Config       config.Config
	Logger       zerolog.Logger
	Nodes        NodeStore
	DisplayModes displaymode.Registry
	Views        view.Renderer
	Catalog      *block.Catalog
	Placements   *placement.Service
	Regions      *region.Renderer
	Renderers    *render.Registry
	Forms        *orchestrator.Orchestrator
	Metrics      *prometheus.Registry

	closers []func() error
}

// New wires every service described by cfg. Callers must Close the result.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	a := &App{Config: cfg}
	if o.logger != nil {
		a.Logger = *o.logger
	} else {
		a.Logger = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}
	logger := logging.WithComponent(a.Logger, "app")

	placements, err := a.openStorage(ctx, cfg.Storage)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if err := a.buildViews(cfg); err != nil {
		_ = a.Close()
		return nil, err
	}

	catalog, err := nodeblock.NewCatalog(blocks.Dependencies{
		Entities:     a.Nodes,
		DisplayModes: a.DisplayModes,
		Views:        a.Views,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: register blocks: %w", err)
	}
	a.Catalog = catalog

	a.Placements, err = placement.NewService(catalog, placements)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: placement service: %w", err)
	}

	a.Metrics = o.registerer
	if a.Metrics == nil {
		a.Metrics = prometheus.NewRegistry()
		a.Metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics, err := region.NewMetrics(a.Metrics)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: region metrics: %w", err)
	}
	a.Regions, err = region.New(a.Placements,
		region.WithLogger(logging.WithComponent(a.Logger, "region")),
		region.WithMetrics(metrics),
	)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: region renderer: %w", err)
	}

	if err := a.buildRenderers(o.tuiOptions); err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Forms = nodeblock.NewOrchestrator(a.Placements, orchestrator.WithRegistry(a.Renderers))

	if seed := cfg.Nodes.Seed; seed != "" {
		count, err := ImportNodesFile(ctx, a.Nodes, seed)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		logger.Info().Str("path", seed).Int("count", count).Msg("seeded nodes")
	}

	logger.Debug().
		Str("storage", cfg.Storage.Driver).
		Strs("plugins", catalog.List()).
		Strs("renderers", a.Renderers.List()).
		Msg("services wired")
	return a, nil
}

// Close releases storage handles.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStorage(ctx context.Context, cfg config.StorageConfig) (placement.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.OpenAndMigrate(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("app: open sqlite %s: %w", cfg.DSN, err)
		}
		a.closers = append(a.closers, db.Close)
		a.Nodes = sqlite.NewNodeStore(db)
		return sqlite.NewPlacementStore(db), nil
	case config.DriverMemory, "":
		a.Nodes = NewMemoryNodes()
		return placement.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("app: unknown storage driver %q", cfg.Driver)
	}
}

func (a *App) buildViews(cfg config.Config) error {
	if path := cfg.DisplayModes.Path; path != "" {
		modes, err := displaymode.LoadFS(os.DirFS(path))
		if err != nil {
			return fmt.Errorf("app: load display modes from %s: %w", path, err)
		}
		a.DisplayModes = modes
	} else {
		a.DisplayModes = displaymode.Default()
	}

	var viewOpts []view.Option
	if dir := cfg.Templates.Dir; dir != "" {
		viewOpts = append(viewOpts, view.WithTemplatesDir(dir))
	}
	if manifestPath := cfg.Theme.Manifest; manifestPath != "" {
		manifest, err := view.LoadThemeManifest(os.DirFS(filepath.Dir(manifestPath)), filepath.Base(manifestPath))
		if err != nil {
			return fmt.Errorf("app: %w", err)
		}
		viewOpts = append(viewOpts, view.WithTheme(manifest, cfg.Theme.Variant))
	}
	views, err := view.NewBuilder(viewOpts...)
	if err != nil {
		return fmt.Errorf("app: view builder: %w", err)
	}
	a.Views = views
	return nil
}

func (a *App) buildRenderers(tuiOptions []tui.Option) error {
	html, err := vanilla.New(vanilla.WithRuntimeScript(AssetsPath + nodeblock.RuntimeScript))
	if err != nil {
		return fmt.Errorf("app: html renderer: %w", err)
	}
	prompts, err := tui.New(append([]tui.Option{tui.WithSearcher(a.Nodes)}, tuiOptions...)...)
	if err != nil {
		return fmt.Errorf("app: terminal renderer: %w", err)
	}

	a.Renderers = render.NewRegistry()
	for _, renderer := range []render.Renderer{html, prompts} {
		if err := a.Renderers.Register(renderer); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	return nil
}
