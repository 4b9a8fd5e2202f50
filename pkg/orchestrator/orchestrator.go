package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/placement"
	"github.com/goliatone/go-nodeblock/pkg/render"
	"github.com/goliatone/go-nodeblock/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// FormSource resolves a placement and its admin form. *placement.Service
// satisfies it.
type FormSource interface {
	Form(ctx context.Context, id string) (placement.Placement, model.FormModel, error)
}

// TokenFunc derives the form token embedded for a placement.
type TokenFunc func(placementID string) string

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer registers an additional renderer on the orchestrator's
// registry.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer != nil {
			o.extra = append(o.extra, renderer)
		}
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithFormTokens embeds a token hidden field produced by fn in every form.
func WithFormTokens(fn TokenFunc) Option {
	return func(o *Orchestrator) {
		o.tokens = fn
	}
}

// Orchestrator renders block configuration forms. It defaults to the vanilla
// HTML renderer and stays open to injected renderers.
type Orchestrator struct {
	forms           FormSource
	registry        *render.Registry
	extra           []render.Renderer
	defaultRenderer string
	tokens          TokenFunc
	initialiseErr   error
}

// New constructs an Orchestrator over forms applying any provided options.
func New(forms FormSource, options ...Option) *Orchestrator {
	o := &Orchestrator{
		forms:           forms,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes which placement form to render and how.
type Request struct {
	// PlacementID selects the block instance whose form is rendered.
	PlacementID string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request data such as the form action,
	// re-displayed values and errors.
	RenderOptions render.RenderOptions
}

// Output is a rendered form together with what produced it.
type Output struct {
	Placement   placement.Placement
	Form        model.FormModel
	Body        []byte
	ContentType string
}

// Generate resolves the placement form and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}
	if o.forms == nil {
		return Output{}, errors.New("orchestrator: form source is nil")
	}
	if req.PlacementID == "" {
		return Output{}, errors.New("orchestrator: placement id is required")
	}

	p, form, err := o.forms.Form(ctx, req.PlacementID)
	if err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	opts := req.RenderOptions
	hidden := []render.HiddenField{render.FormID(form.ID)}
	if o.tokens != nil {
		hidden = append(hidden, render.CSRFToken(o.tokens(p.ID)))
	}
	opts.HiddenFields = render.MergeHiddenFields(opts.HiddenFields, hidden...)

	body, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Output{
		Placement:   p,
		Form:        form,
		Body:        body,
		ContentType: renderer.ContentType(),
	}, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	for _, renderer := range o.extra {
		if err := o.registry.Register(renderer); err != nil && o.initialiseErr == nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register renderer: %w", err)
		}
	}
	o.extra = nil
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
