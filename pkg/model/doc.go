// Package model defines the form model block plugins return from their
// configuration hook and renderers consume. A FormModel is renderer neutral:
// the vanilla renderer turns it into HTML, the tui renderer into terminal
// prompts. Widgets name the control a field needs (entity autocomplete,
// radios, plain text) and Metadata carries widget-specific hints such as the
// autocomplete target type.
package model
