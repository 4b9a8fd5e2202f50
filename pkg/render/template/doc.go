// Package template defines the renderer-agnostic template contract shared by
// the admin form renderer and the entity view renderer. The gotemplate
// subpackage provides the pongo2-backed implementation.
package template
