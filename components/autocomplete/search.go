package autocomplete

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-nodeblock/pkg/entity"
)

// Search queries searcher and projects the matches into suggestions. An
// empty query, a zero limit or a nil searcher yield an empty, non-nil slice.
func Search(ctx context.Context, searcher entity.Searcher, entityType, query string, limit int, opts Options) ([]Suggestion, error) {
	out := []Suggestion{}
	limit = clampLimit(limit, opts)
	query = strings.TrimSpace(query)
	if searcher == nil || limit == 0 || query == "" {
		return out, nil
	}

	matches, err := searcher.Search(ctx, entityType, query, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: search %s: %w", entityType, err)
	}
	for _, match := range matches {
		if match == nil {
			continue
		}
		out = append(out, Suggestion{Value: entity.AutocompleteValue(match), Label: match.Label()})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
