package entity

// Node is the content entity rendered by the reference blocks.
type Node struct {
	NodeID string         `json:"id" yaml:"id"`
	Type   string         `json:"type" yaml:"type"`
	Title  string         `json:"title" yaml:"title"`
	Body   string         `json:"body,omitempty" yaml:"body,omitempty"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

var (
	_ Entity  = (*Node)(nil)
	_ Bundled = (*Node)(nil)
	_ Fielded = (*Node)(nil)
)

func (n *Node) EntityType() string { return TypeNode }
func (n *Node) ID() string         { return n.NodeID }
func (n *Node) Label() string      { return n.Title }
func (n *Node) Bundle() string     { return n.Type }

// FieldValues returns the custom fields merged with the base properties. Base
// properties win over custom fields sharing a name.
func (n *Node) FieldValues() map[string]any {
	out := make(map[string]any, len(n.Fields)+4)
	for key, value := range n.Fields {
		out[key] = value
	}
	out["id"] = n.NodeID
	out["type"] = n.Type
	out["title"] = n.Title
	out["body"] = n.Body
	return out
}
