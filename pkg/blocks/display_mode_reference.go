package blocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/displaymode"
	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

// DisplayModeReferenceID is the plugin id of DisplayModeReference.
const DisplayModeReferenceID = "Custom_block"

// DisplayModeReference renders one referenced node in a configured view mode.
type DisplayModeReference struct {
	entities entity.Loader
	modes    displaymode.Registry
	views    view.Renderer
}

var _ block.Plugin = (*DisplayModeReference)(nil)

// NewDisplayModeReference constructs the plugin from its three collaborators.
func NewDisplayModeReference(entities entity.Loader, modes displaymode.Registry, views view.Renderer) (*DisplayModeReference, error) {
	switch {
	case entities == nil:
		return nil, errors.New("blocks: entity loader is required")
	case modes == nil:
		return nil, errors.New("blocks: display mode registry is required")
	case views == nil:
		return nil, errors.New("blocks: view renderer is required")
	}
	return &DisplayModeReference{entities: entities, modes: modes, views: views}, nil
}

func (b *DisplayModeReference) Descriptor() block.Descriptor {
	return block.Descriptor{
		ID:         DisplayModeReferenceID,
		AdminLabel: "custom block",
		Category:   CategoryCustom,
	}
}

func (b *DisplayModeReference) DefaultConfiguration() block.Configuration {
	return block.Configuration{
		ConfigEntityField: "",
		ConfigDisplayMode: "",
	}
}

// ListDisplayModes returns the view modes of entityType projected onto their
// labels, in registry order.
func (b *DisplayModeReference) ListDisplayModes(ctx context.Context, entityType string) (displaymode.Options, error) {
	return displaymode.List(ctx, b.modes, entityType)
}

func (b *DisplayModeReference) Form(ctx context.Context, cfg block.Configuration, _ *block.FormState) (model.FormModel, error) {
	reference := entityReferenceField("Entity Field")
	if err := applyReferenceDefault(ctx, b.entities, &reference, cfg.Get(ConfigEntityField)); err != nil {
		return model.FormModel{}, err
	}

	options, err := b.ListDisplayModes(ctx, entity.TypeNode)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("blocks: display mode options: %w", err)
	}
	mode := model.Field{
		Name:    ConfigDisplayMode,
		Type:    model.FieldTypeString,
		Widget:  model.WidgetRadios,
		Label:   "Display Mode",
		Default: cfg.Get(ConfigDisplayMode),
		Options: make([]model.Option, 0, len(options)),
	}
	for _, option := range options {
		mode.Options = append(mode.Options, model.Option{Value: option.Key, Label: option.Label})
	}

	return model.FormModel{
		ID:     DisplayModeReferenceID,
		Title:  "custom block",
		Fields: []model.Field{reference, mode},
	}, nil
}

func (b *DisplayModeReference) Submit(_ context.Context, cfg block.Configuration, state *block.FormState) (block.Configuration, error) {
	out := cfg.Clone()
	out[ConfigEntityField] = state.Value(ConfigEntityField)
	out[ConfigDisplayMode] = state.Value(ConfigDisplayMode)
	return out, nil
}

// Build delegates to the view renderer and returns its fragment unmodified.
// A node that does not resolve yields the empty output.
func (b *DisplayModeReference) Build(ctx context.Context, cfg block.Configuration) (block.Output, error) {
	node, err := loadNode(ctx, b.entities, cfg.Get(ConfigEntityField))
	if err != nil {
		return block.Output{}, err
	}
	if node == nil {
		return block.Output{}, nil
	}
	fragment, err := b.views.View(ctx, node, cfg.Get(ConfigDisplayMode))
	if err != nil {
		return block.Output{}, fmt.Errorf("blocks: view node %q: %w", node.ID(), err)
	}
	return block.Output{Fragment: fragment}, nil
}
