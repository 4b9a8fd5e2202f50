package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-nodeblock/internal/app"
	"github.com/goliatone/go-nodeblock/internal/config"
	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/blocks"
	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/placement"
	"github.com/goliatone/go-nodeblock/pkg/region"
)

func newTestServer(t *testing.T) (*Server, *app.App) {
	t.Helper()
	ctx := context.Background()
	a, err := app.New(ctx, config.Config{
		HTTP:    config.HTTPConfig{CSRFSecret: "test-secret"},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
	}, app.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	for _, node := range []*entity.Node{
		{NodeID: "42", Type: "article", Title: "Launch Announcement", Body: "<p>We launched.</p>"},
		{NodeID: "7", Type: "page", Title: "About us"},
	} {
		if err := a.Nodes.Put(ctx, node); err != nil {
			t.Fatalf("put node: %v", err)
		}
	}

	srv, err := New(ctx, a)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	return srv, a
}

func do(t *testing.T, srv *Server, method, target string, body url.Values, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(body.Encode())
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func placeBlock(t *testing.T, srv *Server, regionName, pluginID string) placement.Placement {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/admin/regions/"+regionName+"/blocks", url.Values{"plugin": {pluginID}, "weight": {"1"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("place: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var p placement.Placement
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode placement: %v", err)
	}
	return p
}

var tokenPattern = regexp.MustCompile(`name="form_token" value="([^"]+)"`)

func TestServer_ConfigureFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	p := placeBlock(t, srv, "sidebar", blocks.DisplayModeReferenceID)

	form := do(t, srv, http.MethodGet, "/admin/blocks/"+p.ID+"/configure", nil)
	if form.Code != http.StatusOK {
		t.Fatalf("form: expected 200, got %d", form.Code)
	}
	body := form.Body.String()
	for _, want := range []string{`action="/admin/blocks/` + p.ID + `/configure"`, `data-autocomplete-path="/admin/autocomplete/node"`, `name="display_mode"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in form:\n%s", want, body)
		}
	}
	match := tokenPattern.FindStringSubmatch(body)
	if match == nil {
		t.Fatalf("form has no token:\n%s", body)
	}

	submit := do(t, srv, http.MethodPost, "/admin/blocks/"+p.ID+"/configure", url.Values{
		"entity_field": {"Launch Announcement (42)"},
		"display_mode": {"full"},
		"form_token":   {match[1]},
	})
	if submit.Code != http.StatusSeeOther {
		t.Fatalf("submit: expected 303, got %d: %s", submit.Code, submit.Body.String())
	}
	if loc := submit.Header().Get("Location"); loc != "/regions/sidebar" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	page := do(t, srv, http.MethodGet, "/regions/sidebar", nil)
	if page.Code != http.StatusOK {
		t.Fatalf("region: expected 200, got %d", page.Code)
	}
	if !strings.Contains(page.Body.String(), "Launch Announcement") {
		t.Fatalf("expected node in region:\n%s", page.Body.String())
	}
	if tags := page.Header().Get(HeaderCacheTags); tags != "node:42" {
		t.Fatalf("unexpected cache tags %q", tags)
	}
}

func TestServer_ConfigureRejectsBadToken(t *testing.T) {
	srv, a := newTestServer(t)
	p := placeBlock(t, srv, "content", blocks.SimpleReferenceID)

	rec := do(t, srv, http.MethodPost, "/admin/blocks/"+p.ID+"/configure", url.Values{
		"entity_field": {"42"},
		"form_token":   {"forged"},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "form has become outdated") || !strings.Contains(rec.Body.String(), `value="42"`) {
		t.Fatalf("expected re-rendered form with message:\n%s", rec.Body.String())
	}

	stored, err := a.Placements.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Configuration["entity_field"] != "" {
		t.Fatalf("configuration must be unchanged, got %v", stored.Configuration)
	}
}

func TestServer_RegionJSONWithBrokenBlock(t *testing.T) {
	srv, a := newTestServer(t)
	p := placeBlock(t, srv, "content", blocks.SimpleReferenceID)
	if _, err := a.Placements.Configure(context.Background(), p.ID, url.Values{"entity_field": {"999"}}); err != nil {
		t.Fatalf("configure: %v", err)
	}

	rec := do(t, srv, http.MethodGet, "/regions/content", nil, "Accept", "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result region.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Blocks) != 1 || !result.Blocks[0].Broken {
		t.Fatalf("expected a broken block, got %+v", result.Blocks)
	}
}

func TestServer_AdminListing(t *testing.T) {
	srv, _ := newTestServer(t)
	p := placeBlock(t, srv, "header", blocks.SimpleReferenceID)

	var descriptors []block.Descriptor
	rec := do(t, srv, http.MethodGet, "/admin/plugins", nil)
	if err := json.NewDecoder(rec.Body).Decode(&descriptors); err != nil || len(descriptors) != 2 {
		t.Fatalf("plugins: %v %+v", err, descriptors)
	}

	var regions []string
	rec = do(t, srv, http.MethodGet, "/admin/regions", nil)
	if err := json.NewDecoder(rec.Body).Decode(&regions); err != nil || len(regions) != 1 || regions[0] != "header" {
		t.Fatalf("regions: %v %v", err, regions)
	}

	var placements []placement.Placement
	rec = do(t, srv, http.MethodGet, "/admin/regions/header/blocks", nil)
	if err := json.NewDecoder(rec.Body).Decode(&placements); err != nil || len(placements) != 1 || placements[0].ID != p.ID {
		t.Fatalf("region blocks: %v %+v", err, placements)
	}

	if rec := do(t, srv, http.MethodGet, "/admin/blocks/"+p.ID, nil); rec.Code != http.StatusOK {
		t.Fatalf("get block: %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/admin/blocks/"+p.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete block: %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/admin/blocks/"+p.ID, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get removed block: %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/admin/blocks/"+p.ID+"/configure", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("form of removed block: %d", rec.Code)
	}
}

func TestServer_PlaceValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := do(t, srv, http.MethodPost, "/admin/regions/content/blocks", url.Values{"plugin": {"nope"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown plugin: expected 400, got %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/admin/regions/content/blocks", url.Values{"plugin": {blocks.SimpleReferenceID}, "weight": {"heavy"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad weight: expected 400, got %d", rec.Code)
	}
}

func TestServer_Autocomplete(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/admin/autocomplete/node?q=launch", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"value":"Launch Announcement (42)"`) {
		t.Fatalf("unexpected suggestions %s", rec.Body.String())
	}
}

func TestServer_AmbientEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := do(t, srv, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}

	rec := do(t, srv, http.MethodGet, "/openapi.json", nil)
	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if _, ok := doc["paths"].(map[string]any)["/admin/blocks/{id}/configure"]; !ok {
		t.Fatalf("openapi document misses configure path")
	}

	rec = do(t, srv, http.MethodGet, "/assets/nodeblock-autocomplete.js", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "data-autocomplete-path") {
		t.Fatalf("asset: %d", rec.Code)
	}

	do(t, srv, http.MethodGet, "/regions/empty", nil)
	rec = do(t, srv, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestFormTokens(t *testing.T) {
	tokens := NewFormTokens("secret")
	token := tokens.Issue("p1")
	if !tokens.Verify("p1", token) {
		t.Fatalf("token must verify for its placement")
	}
	if tokens.Verify("p2", token) || tokens.Verify("p1", "") {
		t.Fatalf("token must not verify elsewhere")
	}
	if NewFormTokens("other").Verify("p1", token) {
		t.Fatalf("token must depend on the secret")
	}
	random := NewFormTokens("")
	if random.Verify("p1", token) {
		t.Fatalf("random secret must differ")
	}
}
