package region

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/placement"
)

// BrokenBlockMessage is shown in place of a block that failed to build.
const BrokenBlockMessage = "This block is broken or missing. You may be missing content or you might need to reconfigure the block."

// Source lists a region's placements and builds them.
// *placement.Service satisfies it.
type Source interface {
	Region(ctx context.Context, region string) ([]placement.Placement, error)
	BuildPlacement(ctx context.Context, p placement.Placement) (block.Output, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used when the request context carries none.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics records block build outcomes.
func WithMetrics(metrics *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = metrics
	}
}

// WithPolicy overrides the sanitising policy. A nil policy disables
// sanitising.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		r.policy = policy
	}
}

// Renderer composes regions.
type Renderer struct {
	source  Source
	logger  zerolog.Logger
	metrics *Metrics
	policy  *bluemonday.Policy
}

// New constructs a Renderer over source.
func New(source Source, options ...Option) (*Renderer, error) {
	if source == nil {
		return nil, errors.New("region: source is required")
	}
	r := &Renderer{
		source: source,
		logger: zerolog.Nop(),
		policy: NewPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Block is one placement's contribution to a region.
type Block struct {
	PlacementID string   `json:"placementId"`
	PluginID    string   `json:"pluginId"`
	Markup      string   `json:"markup"`
	CacheTags   []string `json:"cacheTags,omitempty"`
	Broken      bool     `json:"broken,omitempty"`
}

// Result is a composed region.
type Result struct {
	Region string  `json:"region"`
	Blocks []Block `json:"blocks"`
}

// HTML wraps the blocks in the region container.
func (r Result) HTML() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="region region-%s">`, cssIdentifier(r.Region))
	for _, blk := range r.Blocks {
		b.WriteString(blk.Markup)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// CacheTags returns the union of block cache tags in first-seen order.
func (r Result) CacheTags() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, blk := range r.Blocks {
		for _, tag := range blk.CacheTags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Render builds every placement of region. Only a failure to list the
// region is returned as an error.
func (r *Renderer) Render(ctx context.Context, region string) (Result, error) {
	placements, err := r.source.Region(ctx, region)
	if err != nil {
		return Result{}, fmt.Errorf("region: list %q: %w", region, err)
	}

	logger := r.logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = *l
	}

	result := Result{Region: region, Blocks: []Block{}}
	for _, p := range placements {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		out, err := r.source.BuildPlacement(ctx, p)
		if err != nil {
			outcome := classify(err)
			r.metrics.observe(p.PluginID, outcome)
			logger.Warn().
				Err(err).
				Str("region", region).
				Str("placement_id", p.ID).
				Str("plugin_id", p.PluginID).
				Str("outcome", outcome).
				Msg("block build failed")
			result.Blocks = append(result.Blocks, Block{
				PlacementID: p.ID,
				PluginID:    p.PluginID,
				Markup:      brokenMarkup(p),
				Broken:      true,
			})
			continue
		}
		if out.IsEmpty() {
			r.metrics.observe(p.PluginID, OutcomeEmpty)
			continue
		}

		r.metrics.observe(p.PluginID, OutcomeRendered)
		result.Blocks = append(result.Blocks, Block{
			PlacementID: p.ID,
			PluginID:    p.PluginID,
			Markup:      wrapBlock(p, r.sanitize(out.HTML())),
			CacheTags:   out.Fragment.CacheTags,
		})
	}
	return result, nil
}

func (r *Renderer) sanitize(markup string) string {
	if r.policy == nil {
		return markup
	}
	return r.policy.Sanitize(markup)
}

func classify(err error) string {
	switch {
	case errors.Is(err, entity.ErrMissingEntity):
		return OutcomeMissingEntity
	case errors.Is(err, block.ErrPluginNotFound):
		return OutcomeMissingPlugin
	default:
		return OutcomeError
	}
}

func wrapBlock(p placement.Placement, content string) string {
	return fmt.Sprintf(`<div id="block-%s" class="block block-%s" data-block-plugin="%s">%s</div>`,
		html.EscapeString(p.ID), cssIdentifier(p.PluginID), html.EscapeString(p.PluginID), content)
}

func brokenMarkup(p placement.Placement) string {
	return fmt.Sprintf(`<div id="block-%s" class="block block--broken" data-block-plugin="%s">%s</div>`,
		html.EscapeString(p.ID), html.EscapeString(p.PluginID), html.EscapeString(BrokenBlockMessage))
}

// cssIdentifier lowercases value and replaces anything outside [a-z0-9-]
// with a hyphen.
func cssIdentifier(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
