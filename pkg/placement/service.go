package placement

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/model"
)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the placement id generator.
func WithIDGenerator(next func() string) ServiceOption {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}

// Service runs the block instance lifecycle against a plugin catalog and a
// placement store.
type Service struct {
	catalog *block.Catalog
	store   Store
	now     func() time.Time
	newID   func() string
}

// NewService wires a Service.
func NewService(catalog *block.Catalog, store Store, options ...ServiceOption) (*Service, error) {
	if catalog == nil {
		return nil, errors.New("placement: catalog is required")
	}
	if store == nil {
		return nil, errors.New("placement: store is required")
	}
	svc := &Service{
		catalog: catalog,
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Place creates a block instance of pluginID in region, configured with the
// plugin defaults.
func (s *Service) Place(ctx context.Context, pluginID, region string, weight int) (Placement, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return Placement{}, errors.New("placement: region is required")
	}
	plugin, err := s.catalog.Get(pluginID)
	if err != nil {
		return Placement{}, err
	}

	now := s.now()
	p := Placement{
		ID:            s.newID(),
		PluginID:      pluginID,
		Region:        region,
		Weight:        weight,
		Configuration: plugin.DefaultConfiguration(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Save(ctx, p); err != nil {
		return Placement{}, fmt.Errorf("placement: save %q: %w", p.ID, err)
	}
	return p, nil
}

// Get returns a placement by id.
func (s *Service) Get(ctx context.Context, id string) (Placement, error) {
	return s.store.Get(ctx, id)
}

// Region lists the placements of region in render order.
func (s *Service) Region(ctx context.Context, region string) ([]Placement, error) {
	return s.store.ListRegion(ctx, region)
}

// Regions lists every region holding at least one placement.
func (s *Service) Regions(ctx context.Context) ([]string, error) {
	return s.store.Regions(ctx)
}

// Form returns the placement with the admin form for its current
// configuration.
func (s *Service) Form(ctx context.Context, id string) (Placement, model.FormModel, error) {
	p, plugin, err := s.resolve(ctx, id)
	if err != nil {
		return Placement{}, model.FormModel{}, err
	}
	form, err := plugin.Form(ctx, p.Configuration.Clone(), nil)
	if err != nil {
		return Placement{}, model.FormModel{}, fmt.Errorf("placement: form %q: %w", id, err)
	}
	return p, form, nil
}

// Configure decodes a submitted admin form, passes it through the plugin
// submit handler and stores the resulting configuration.
func (s *Service) Configure(ctx context.Context, id string, submitted url.Values) (Placement, error) {
	p, plugin, err := s.resolve(ctx, id)
	if err != nil {
		return Placement{}, err
	}
	form, err := plugin.Form(ctx, p.Configuration.Clone(), nil)
	if err != nil {
		return Placement{}, fmt.Errorf("placement: form %q: %w", id, err)
	}
	state := block.DecodeForm(form, submitted)

	cfg, err := plugin.Submit(ctx, p.Configuration.Clone(), state)
	if err != nil {
		return Placement{}, fmt.Errorf("placement: submit %q: %w", id, err)
	}
	p.Configuration = cfg
	p.UpdatedAt = s.now()
	if err := s.store.Save(ctx, p); err != nil {
		return Placement{}, fmt.Errorf("placement: save %q: %w", id, err)
	}
	return p, nil
}

// Move changes the region and weight of a placement.
func (s *Service) Move(ctx context.Context, id, region string, weight int) (Placement, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return Placement{}, errors.New("placement: region is required")
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Placement{}, err
	}
	p.Region = region
	p.Weight = weight
	p.UpdatedAt = s.now()
	if err := s.store.Save(ctx, p); err != nil {
		return Placement{}, fmt.Errorf("placement: save %q: %w", id, err)
	}
	return p, nil
}

// Remove deletes a placement and its configuration.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Build renders a single placement.
func (s *Service) Build(ctx context.Context, id string) (block.Output, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return block.Output{}, err
	}
	return s.BuildPlacement(ctx, p)
}

// BuildPlacement renders p with its plugin. Plugin errors are returned
// unwrapped so callers can match them.
func (s *Service) BuildPlacement(ctx context.Context, p Placement) (block.Output, error) {
	plugin, err := s.catalog.Get(p.PluginID)
	if err != nil {
		return block.Output{}, err
	}
	return plugin.Build(ctx, p.Configuration.Clone())
}

func (s *Service) resolve(ctx context.Context, id string) (Placement, block.Plugin, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return Placement{}, nil, err
	}
	plugin, err := s.catalog.Get(p.PluginID)
	if err != nil {
		return Placement{}, nil, err
	}
	return p, plugin, nil
}
