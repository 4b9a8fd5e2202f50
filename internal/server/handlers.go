package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-nodeblock/internal/logging"
	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/orchestrator"
	"github.com/goliatone/go-nodeblock/pkg/placement"
	"github.com/goliatone/go-nodeblock/pkg/render"
)

const (
	autocompletePath = "/admin/autocomplete"

	// HeaderCacheTags lists the cache tags of a rendered region.
	HeaderCacheTags = "X-Cache-Tags"

	staleFormMessage = "The form has become outdated. Press the back button, reload the page and try again."
)

func (s *Server) listPlugins(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Catalog.Descriptors())
}

func (s *Server) listRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := s.app.Placements.Regions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if regions == nil {
		regions = []string{}
	}
	writeJSON(w, http.StatusOK, regions)
}

func (s *Server) listRegionBlocks(w http.ResponseWriter, r *http.Request) {
	placements, err := s.app.Placements.Region(r.Context(), chi.URLParam(r, "region"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if placements == nil {
		placements = []placement.Placement{}
	}
	writeJSON(w, http.StatusOK, placements)
}

func (s *Server) placeBlock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	weight := 0
	if raw := strings.TrimSpace(r.PostForm.Get("weight")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "weight must be an integer", http.StatusBadRequest)
			return
		}
		weight = parsed
	}

	p, err := s.app.Placements.Place(r.Context(), r.PostForm.Get("plugin"), chi.URLParam(r, "region"), weight)
	if err != nil {
		if errors.Is(err, block.ErrPluginNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context(), s.logger).Info().
		Str(logging.FieldPlacementID, p.ID).
		Str(logging.FieldPluginID, p.PluginID).
		Str(logging.FieldRegion, p.Region).
		Msg("block placed")
	w.Header().Set("Location", "/admin/blocks/"+url.PathEscape(p.ID))
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getBlock(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.Placements.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) removeBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.app.Placements.Remove(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context(), s.logger).Info().Str(logging.FieldPlacementID, id).Msg("block removed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) blockForm(w http.ResponseWriter, r *http.Request) {
	s.writeForm(w, r, http.StatusOK, render.RenderOptions{})
}

func (s *Server) configureBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	if !s.tokens.Verify(id, r.PostForm.Get(render.FieldCSRFToken)) {
		logging.FromContext(r.Context(), s.logger).Warn().Str(logging.FieldPlacementID, id).Msg("form token mismatch")
		s.writeForm(w, r, http.StatusForbidden, render.RenderOptions{
			Values: submittedValues(r.PostForm),
			Errors: map[string][]string{"": {staleFormMessage}},
		})
		return
	}

	p, err := s.app.Placements.Configure(r.Context(), id, r.PostForm)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	logging.FromContext(r.Context(), s.logger).Info().
		Str(logging.FieldPlacementID, p.ID).
		Str(logging.FieldPluginID, p.PluginID).
		Msg("block configured")
	http.Redirect(w, r, "/regions/"+url.PathEscape(p.Region), http.StatusSeeOther)
}

func (s *Server) renderRegion(w http.ResponseWriter, r *http.Request) {
	result, err := s.app.Regions.Render(r.Context(), chi.URLParam(r, "region"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tags := result.CacheTags(); len(tags) > 0 {
		w.Header().Set(HeaderCacheTags, strings.Join(tags, " "))
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, result)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.HTML()))
}

func (s *Server) writeForm(w http.ResponseWriter, r *http.Request, status int, opts render.RenderOptions) {
	id := chi.URLParam(r, "id")
	opts.Action = "/admin/blocks/" + url.PathEscape(id) + "/configure"
	opts.AutocompleteURL = autocompletePath

	out, err := s.forms.Generate(r.Context(), orchestrator.Request{PlacementID: id, RenderOptions: opts})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(out.Body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, placement.ErrNotFound), errors.Is(err, block.ErrPluginNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case r.Context().Err() != nil:
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	default:
		logging.FromContext(r.Context(), s.logger).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func submittedValues(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for key, values := range form {
		if key == render.FieldCSRFToken || key == render.FieldFormID || len(values) == 0 {
			continue
		}
		out[key] = values[0]
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
