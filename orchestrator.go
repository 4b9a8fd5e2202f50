// Package nodeblock provides block plugins that render a referenced content
// node inside a page region, together with the host services needed to place,
// configure and render them.
package nodeblock

import (
	"context"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/blocks"
	"github.com/goliatone/go-nodeblock/pkg/orchestrator"
	"github.com/goliatone/go-nodeblock/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Dependencies aliases the host services the plugins are built from.
type Dependencies = blocks.Dependencies

// NewCatalog returns a catalog holding both node reference plugins.
func NewCatalog(deps Dependencies) (*block.Catalog, error) {
	catalog := block.NewCatalog()
	if err := blocks.Register(catalog, deps); err != nil {
		return nil, err
	}
	return catalog, nil
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(forms orchestrator.FormSource, options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(forms, options...)
}

// GenerateHTML renders the configuration form of a placement with the
// default HTML renderer.
func GenerateHTML(ctx context.Context, forms orchestrator.FormSource, placementID string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(forms, options...).Generate(ctx, orchestrator.Request{
		PlacementID:   placementID,
		RenderOptions: opts,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
