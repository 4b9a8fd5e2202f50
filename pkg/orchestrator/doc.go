// Package orchestrator wires the placement → admin form → renderer pipeline,
// giving the HTTP server and CLI a single entry point for rendering a block
// configuration form with any registered renderer.
package orchestrator
