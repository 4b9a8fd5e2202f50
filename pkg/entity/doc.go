// Package entity defines the content items block plugins reference and the
// lookup contracts the host satisfies. Absence is not an error at this layer:
// Loader implementations return (nil, nil) for unknown identifiers so each
// caller can decide whether a missing entity is fatal. MemoryStore is a
// concurrency-safe reference implementation used by tests and the demo host.
package entity
