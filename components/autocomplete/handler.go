package autocomplete

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-nodeblock/pkg/entity"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewHandler builds the suggestions handler backed by searcher.
func NewHandler(searcher entity.Searcher, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(searcher, NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// Defaults are re-applied so a zero Options value is usable.
func HandlerWithOptions(searcher entity.Searcher, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		entityType := strings.TrimSpace(opts.EntityType(r))
		if entityType == "" {
			http.Error(w, "autocomplete: entity type is required", http.StatusBadRequest)
			return
		}

		results, err := Search(r.Context(), searcher, entityType,
			r.URL.Query().Get(opts.SearchParam),
			parseInt(r.URL.Query().Get(opts.LimitParam)),
			opts,
		)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(results)
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
