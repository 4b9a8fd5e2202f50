// Package blocks provides the two node reference block plugins.
//
// SimpleReference stores a node id and renders the node label. A configured
// id that no longer resolves is an error at build time
// (*entity.MissingEntityError).
//
// DisplayModeReference stores a node id and a view mode key and renders the
// node through a view.Renderer. A missing or unset node renders nothing and
// is not an error.
//
// Neither plugin validates submitted values: ids and view mode keys are
// stored as submitted.
package blocks
