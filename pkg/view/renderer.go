// Package view renders entities in a named display mode. Builder resolves a
// template per entity type, bundle and mode, honouring go-theme manifest
// overrides, and executes it through the shared template engine.
package view

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-nodeblock/pkg/entity"
	rendertemplate "github.com/goliatone/go-nodeblock/pkg/render/template"
	"github.com/goliatone/go-nodeblock/pkg/render/template/gotemplate"
)

// DefaultMode is used when a caller asks for the empty view mode.
const DefaultMode = "default"

const templateExt = ".tpl"

// Renderer renders an entity in a display mode.
type Renderer interface {
	View(ctx context.Context, e entity.Entity, mode string) (Fragment, error)
}

// Option configures a Builder.
type Option func(*config)

type config struct {
	templates fs.FS
	engine    rendertemplate.TemplateRenderer
	manifest  *theme.Manifest
	variant   string
}

// WithTemplatesFS replaces the built-in template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) != "" {
			cfg.templates = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects the engine used to execute templates. The
// templates fs is still consulted to decide which suggestion exists.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.engine = renderer
		}
	}
}

// WithTheme applies template overrides from a go-theme manifest. Keys take
// the form "<entity type>.<mode>" (for example "node.teaser") and map to a
// template path inside the templates fs. Variant overrides win over the base
// manifest.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return func(cfg *config) {
		cfg.manifest = manifest
		cfg.variant = strings.TrimSpace(variant)
	}
}

// Builder is the template-backed Renderer.
type Builder struct {
	engine    rendertemplate.TemplateRenderer
	templates fs.FS
	overrides map[string]string
}

var _ Renderer = (*Builder)(nil)

// NewBuilder constructs a Builder using the embedded templates unless
// options say otherwise.
func NewBuilder(options ...Option) (*Builder, error) {
	cfg := config{templates: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templates),
			gotemplate.WithExtension(templateExt),
		)
		if err != nil {
			return nil, fmt.Errorf("view: configure template renderer: %w", err)
		}
		engine = built
	}

	return &Builder{
		engine:    engine,
		templates: cfg.templates,
		overrides: themeTemplates(cfg.manifest, cfg.variant),
	}, nil
}

// View renders e with the first template that exists among the suggestions
// for its type, bundle and mode.
func (b *Builder) View(ctx context.Context, e entity.Entity, mode string) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}
	if e == nil {
		return Fragment{}, errors.New("view: entity is required")
	}
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = DefaultMode
	}

	name, err := b.resolve(e, mode)
	if err != nil {
		return Fragment{}, err
	}

	markup, err := b.engine.RenderTemplate(name, viewData(e, mode))
	if err != nil {
		return Fragment{}, fmt.Errorf("view: render %s %s as %q: %w", e.EntityType(), e.ID(), mode, err)
	}

	return Fragment{
		EntityType: e.EntityType(),
		EntityID:   e.ID(),
		ViewMode:   mode,
		Markup:     markup,
		CacheTags:  []string{e.EntityType() + ":" + e.ID()},
	}, nil
}

// Suggestions lists candidate template names, most specific first.
func (b *Builder) Suggestions(e entity.Entity, mode string) []string {
	entityType := e.EntityType()
	var bundle string
	if bundled, ok := e.(entity.Bundled); ok {
		bundle = strings.TrimSpace(bundled.Bundle())
	}

	var out []string
	if override := b.overrides[entityType+"."+mode]; override != "" {
		out = append(out, override)
	}
	if bundle != "" {
		out = append(out, entityType+"--"+bundle+"--"+mode)
	}
	out = append(out, entityType+"--"+mode)
	if bundle != "" {
		out = append(out, entityType+"--"+bundle)
	}
	return append(out, entityType)
}

func (b *Builder) resolve(e entity.Entity, mode string) (string, error) {
	suggestions := b.Suggestions(e, mode)
	for _, name := range suggestions {
		if !strings.HasSuffix(name, templateExt) {
			name += templateExt
		}
		if _, err := fs.Stat(b.templates, name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("view: no template for %s in mode %q (tried %s)", e.EntityType(), mode, strings.Join(suggestions, ", "))
}

func viewData(e entity.Entity, mode string) map[string]any {
	info := map[string]any{
		"type":  e.EntityType(),
		"id":    e.ID(),
		"label": e.Label(),
	}
	if bundled, ok := e.(entity.Bundled); ok {
		info["bundle"] = bundled.Bundle()
	}
	fields := map[string]any{}
	if fielded, ok := e.(entity.Fielded); ok {
		fields = fielded.FieldValues()
	}
	return map[string]any{
		"entity":    info,
		"label":     e.Label(),
		"view_mode": mode,
		"fields":    fields,
	}
}

func themeTemplates(manifest *theme.Manifest, variant string) map[string]string {
	if manifest == nil {
		return nil
	}
	out := make(map[string]string, len(manifest.Templates))
	for key, path := range manifest.Templates {
		out[key] = path
	}
	if v, ok := manifest.Variants[variant]; ok {
		for key, path := range v.Templates {
			out[key] = path
		}
	}
	return out
}
