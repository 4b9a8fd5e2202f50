package autocomplete

import (
	"net/http"
	"path"
	"strings"
)

type GuardFunc func(r *http.Request) error

// EntityTypeFunc extracts the entity type to search from a request.
type EntityTypeFunc func(r *http.Request) string

type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
	EntityType   EntityTypeFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/admin/autocomplete",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 10,
		MaxLimit:     50,
		EntityType:   lastSegment,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/admin/autocomplete"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.EntityType == nil {
		opts.EntityType = lastSegment
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithEntityType replaces the default extraction, which reads the last path
// segment of the request URL.
func WithEntityType(fn EntityTypeFunc) OptionFn {
	return func(o *Options) {
		o.EntityType = fn
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

func lastSegment(r *http.Request) string {
	p := strings.TrimRight(r.URL.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
