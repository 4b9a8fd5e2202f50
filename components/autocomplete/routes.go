package autocomplete

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-nodeblock/pkg/entity"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the pattern the handler is registered under for
// basePath. The entity type is the final path segment.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the suggestions handler for entityTypes under
// basePath and returns the registered patterns.
func RegisterRoutes(mux Mux, basePath string, searcher entity.Searcher, entityTypes []string, fns ...OptionFn) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("autocomplete: missing mux")
	}
	opts := NewOptions(fns...)
	handler := HandlerWithOptions(searcher, opts)
	root := mountPath(basePath, opts.RoutePath)

	patterns := make([]string, 0, len(entityTypes))
	for _, entityType := range entityTypes {
		entityType = strings.Trim(strings.TrimSpace(entityType), "/")
		if entityType == "" {
			continue
		}
		pattern := strings.TrimRight(root, "/") + "/" + entityType
		mux.Handle(pattern, handler)
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
