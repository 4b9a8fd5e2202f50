package blocks

import (
	"fmt"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/displaymode"
	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

// Dependencies are the host services the plugins are constructed from.
type Dependencies struct {
	Entities     entity.Loader
	DisplayModes displaymode.Registry
	Views        view.Renderer
}

// Register constructs both plugins and adds them to catalog.
func Register(catalog *block.Catalog, deps Dependencies) error {
	if catalog == nil {
		return fmt.Errorf("blocks: catalog is required")
	}
	simple, err := NewSimpleReference(deps.Entities)
	if err != nil {
		return err
	}
	withMode, err := NewDisplayModeReference(deps.Entities, deps.DisplayModes, deps.Views)
	if err != nil {
		return err
	}
	for _, plugin := range []block.Plugin{simple, withMode} {
		if err := catalog.Register(plugin); err != nil {
			return err
		}
	}
	return nil
}

// Descriptors returns the static metadata of both plugins without
// constructing them.
func Descriptors() []block.Descriptor {
	return []block.Descriptor{
		(*SimpleReference)(nil).Descriptor(),
		(*DisplayModeReference)(nil).Descriptor(),
	}
}
