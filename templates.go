package nodeblock

import (
	"io/fs"

	"github.com/goliatone/go-nodeblock/pkg/renderers/vanilla"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

// EmbeddedTemplates exposes the built-in admin form templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// ViewTemplates exposes the built-in node view mode templates.
func ViewTemplates() fs.FS {
	return view.TemplatesFS()
}
