package blocks

import (
	"context"
	"fmt"

	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/model"
)

// Configuration keys.
const (
	ConfigEntityField = "entity_field"
	ConfigDisplayMode = "display_mode"
)

// CategoryCustom is the admin category both plugins are listed under.
const CategoryCustom = "Custom"

func entityReferenceField(label string) model.Field {
	return model.Field{
		Name:   ConfigEntityField,
		Type:   model.FieldTypeString,
		Widget: model.WidgetEntityAutocomplete,
		Label:  label,
		Metadata: map[string]string{
			model.MetadataTargetType: entity.TypeNode,
		},
	}
}

// applyReferenceDefault sets the field default to the autocomplete value of
// the referenced node. An id that does not resolve leaves the field empty.
func applyReferenceDefault(ctx context.Context, loader entity.Loader, field *model.Field, id string) error {
	if id == "" {
		return nil
	}
	node, err := loadNode(ctx, loader, id)
	if err != nil {
		return err
	}
	if node == nil {
		return nil
	}
	field.Default = entity.AutocompleteValue(node)
	field.Metadata[model.MetadataDefaultEntityID] = node.ID()
	return nil
}

func loadNode(ctx context.Context, loader entity.Loader, id string) (entity.Entity, error) {
	if id == "" {
		return nil, nil
	}
	node, err := loader.Load(ctx, entity.TypeNode, id)
	if err != nil {
		return nil, fmt.Errorf("blocks: load node %q: %w", id, err)
	}
	return node, nil
}
