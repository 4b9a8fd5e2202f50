package blocks

import (
	"context"
	"errors"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/model"
)

// SimpleReferenceID is the plugin id of SimpleReference.
const SimpleReferenceID = "block_task_block_task"

// SimpleReference renders the label of one referenced node.
type SimpleReference struct {
	entities entity.Loader
}

var _ block.Plugin = (*SimpleReference)(nil)

// NewSimpleReference constructs the plugin around an entity loader.
func NewSimpleReference(entities entity.Loader) (*SimpleReference, error) {
	if entities == nil {
		return nil, errors.New("blocks: entity loader is required")
	}
	return &SimpleReference{entities: entities}, nil
}

func (b *SimpleReference) Descriptor() block.Descriptor {
	return block.Descriptor{
		ID:         SimpleReferenceID,
		AdminLabel: "block task",
		Category:   CategoryCustom,
	}
}

func (b *SimpleReference) DefaultConfiguration() block.Configuration {
	return block.Configuration{ConfigEntityField: ""}
}

func (b *SimpleReference) Form(ctx context.Context, cfg block.Configuration, _ *block.FormState) (model.FormModel, error) {
	field := entityReferenceField("Node Reference")
	if err := applyReferenceDefault(ctx, b.entities, &field, cfg.Get(ConfigEntityField)); err != nil {
		return model.FormModel{}, err
	}
	return model.FormModel{
		ID:     SimpleReferenceID,
		Title:  "block task",
		Fields: []model.Field{field},
	}, nil
}

func (b *SimpleReference) Submit(_ context.Context, cfg block.Configuration, state *block.FormState) (block.Configuration, error) {
	out := cfg.Clone()
	out[ConfigEntityField] = state.Value(ConfigEntityField)
	return out, nil
}

// Build returns the node label as raw markup. A node that does not resolve
// yields *entity.MissingEntityError.
func (b *SimpleReference) Build(ctx context.Context, cfg block.Configuration) (block.Output, error) {
	id := cfg.Get(ConfigEntityField)
	node, err := loadNode(ctx, b.entities, id)
	if err != nil {
		return block.Output{}, err
	}
	if node == nil {
		return block.Output{}, &entity.MissingEntityError{EntityType: entity.TypeNode, ID: id}
	}
	return block.Output{Markup: node.Label()}, nil
}
