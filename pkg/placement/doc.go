// Package placement manages block instances: a plugin placed in a page region
// with its own configuration. The Service drives the lifecycle. Place creates
// an instance with the plugin defaults, Configure runs the plugin submit path
// and Remove deletes the instance. Stores persist placements; MemoryStore is
// the in-process implementation and pkg/storage/sqlite provides a durable one.
package placement
