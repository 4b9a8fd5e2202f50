package blocks_test

import (
	"context"
	"errors"

	"github.com/goliatone/go-nodeblock/pkg/displaymode"
	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

func fixtureStore() *entity.MemoryStore {
	return entity.NewMemoryStore(
		&entity.Node{NodeID: "42", Type: "article", Title: "Launch Announcement"},
		&entity.Node{NodeID: "7", Type: "page", Title: "About us"},
	)
}

func fixtureModes(t interface{ Fatalf(string, ...any) }) *displaymode.Static {
	reg := displaymode.NewStatic()
	if err := reg.Add(entity.TypeNode,
		displaymode.ViewMode{Key: "teaser", Label: "Teaser"},
		displaymode.ViewMode{Key: "full", Label: "Full content"},
	); err != nil {
		t.Fatalf("add modes: %v", err)
	}
	return reg
}

type countingLoader struct {
	inner entity.Loader
	calls int
	err   error
}

func (c *countingLoader) Load(ctx context.Context, entityType, id string) (entity.Entity, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.inner.Load(ctx, entityType, id)
}

type viewCall struct {
	entityID string
	mode     string
}

type stubViews struct {
	calls []viewCall
	err   error
}

func (s *stubViews) View(_ context.Context, e entity.Entity, mode string) (view.Fragment, error) {
	s.calls = append(s.calls, viewCall{entityID: e.ID(), mode: mode})
	if s.err != nil {
		return view.Fragment{}, s.err
	}
	return fragmentFor(e, mode), nil
}

func fragmentFor(e entity.Entity, mode string) view.Fragment {
	return view.Fragment{
		EntityType: e.EntityType(),
		EntityID:   e.ID(),
		ViewMode:   mode,
		Markup:     "<article>" + e.Label() + " as " + mode + "</article>",
		CacheTags:  []string{"node:" + e.ID()},
	}
}

var errBackend = errors.New("backend unavailable")
