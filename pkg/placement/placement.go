package placement

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/goliatone/go-nodeblock/pkg/block"
)

// ErrNotFound is returned for unknown placement ids.
var ErrNotFound = errors.New("placement: not found")

// Placement is one configured block instance within a region.
type Placement struct {
	ID            string              `json:"id"`
	PluginID      string              `json:"pluginId"`
	Region        string              `json:"region"`
	Weight        int                 `json:"weight"`
	Configuration block.Configuration `json:"configuration"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// Store persists placements. ListRegion returns placements in render order.
type Store interface {
	Save(ctx context.Context, p Placement) error
	Get(ctx context.Context, id string) (Placement, error)
	Delete(ctx context.Context, id string) error
	ListRegion(ctx context.Context, region string) ([]Placement, error)
	Regions(ctx context.Context) ([]string, error)
}

// SortForRender orders placements by weight, then creation time, then id.
func SortForRender(placements []Placement) {
	sort.SliceStable(placements, func(i, j int) bool {
		a, b := placements[i], placements[j]
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
