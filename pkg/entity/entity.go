package entity

import "context"

// TypeNode is the entity type of content nodes.
const TypeNode = "node"

// Entity is a content item owned and persisted by the host.
type Entity interface {
	EntityType() string
	ID() string
	Label() string
}

// Bundled is implemented by entities that carry a sub-type (for nodes, the
// content type such as "article" or "page").
type Bundled interface {
	Bundle() string
}

// Fielded is implemented by entities that expose field values to view
// templates.
type Fielded interface {
	FieldValues() map[string]any
}

// Loader resolves an entity by type and identifier. Unknown identifiers return
// (nil, nil); errors are reserved for lookup failures.
type Loader interface {
	Load(ctx context.Context, entityType, id string) (Entity, error)
}

// Searcher returns entities whose label contains query, used to back
// autocomplete suggestions. Results follow the store's natural order.
type Searcher interface {
	Search(ctx context.Context, entityType, query string, limit int) ([]Entity, error)
}
