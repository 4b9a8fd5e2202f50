package template

import (
	"io"
)

// TemplateRenderer is the seam form and view renderers use to execute
// templates. Implementations write the rendered output to every supplied
// writer in addition to returning it.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
