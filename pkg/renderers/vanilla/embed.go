package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/components/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can reuse or
// override individual components.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
