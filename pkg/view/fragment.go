package view

// Fragment is the markup produced for one entity in one view mode, with the
// cache tags a page cache would use to invalidate it.
type Fragment struct {
	EntityType string   `json:"entityType"`
	EntityID   string   `json:"entityId"`
	ViewMode   string   `json:"viewMode"`
	Markup     string   `json:"markup"`
	CacheTags  []string `json:"cacheTags,omitempty"`
}

// IsZero reports whether the fragment carries nothing at all.
func (f Fragment) IsZero() bool {
	return f.EntityType == "" && f.EntityID == "" && f.ViewMode == "" && f.Markup == "" && len(f.CacheTags) == 0
}
