package render

import (
	"context"

	"github.com/goliatone/go-nodeblock/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML for the
// admin UI, JSON answers for terminal prompts).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
