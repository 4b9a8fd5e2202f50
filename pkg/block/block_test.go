package block_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/view"
)

func TestCatalog_RegisterAndLookup(t *testing.T) {
	catalog := block.NewCatalog()
	catalog.MustRegister(stubPlugin{descriptor: block.Descriptor{ID: "b", AdminLabel: "Beta", Category: "Custom"}})
	catalog.MustRegister(stubPlugin{descriptor: block.Descriptor{ID: "a", AdminLabel: "Alpha", Category: "Custom"}})
	catalog.MustRegister(stubPlugin{descriptor: block.Descriptor{ID: "c", AdminLabel: "Core", Category: "Core"}})

	if err := catalog.Register(stubPlugin{descriptor: block.Descriptor{ID: "a"}}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := catalog.Register(stubPlugin{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if err := catalog.Register(nil); err == nil {
		t.Fatalf("expected error for nil plugin")
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, catalog.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	var labels []string
	for _, d := range catalog.Descriptors() {
		labels = append(labels, d.AdminLabel)
	}
	if diff := cmp.Diff([]string{"Core", "Alpha", "Beta"}, labels); diff != "" {
		t.Fatalf("descriptor order mismatch (-want +got):\n%s", diff)
	}

	if _, err := catalog.Get("missing"); !errors.Is(err, block.ErrPluginNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !catalog.Has("b") || catalog.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
}

func TestConfiguration_CloneIsIndependent(t *testing.T) {
	cfg := block.Configuration{"entity_field": "42"}
	clone := cfg.Clone()
	clone["entity_field"] = "7"

	if cfg.Get("entity_field") != "42" {
		t.Fatalf("clone mutated original")
	}
	if got := block.Configuration(nil).Clone(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil clone, got %#v", got)
	}
}

func TestOutput(t *testing.T) {
	if !(block.Output{}).IsEmpty() {
		t.Fatalf("zero output should be empty")
	}
	markup := block.Output{Markup: "Launch Announcement"}
	if markup.IsEmpty() || markup.HTML() != "Launch Announcement" {
		t.Fatalf("unexpected markup output %+v", markup)
	}
	fragment := block.Output{Fragment: view.Fragment{EntityID: "7", Markup: "<article/>"}}
	if fragment.IsEmpty() || fragment.HTML() != "<article/>" {
		t.Fatalf("unexpected fragment output %+v", fragment)
	}
}

func TestDecodeForm(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "entity_field", Widget: model.WidgetEntityAutocomplete},
		{Name: "display_mode", Widget: model.WidgetRadios},
	}}

	state := block.DecodeForm(form, url.Values{
		"entity_field": {"Launch Announcement (42)"},
		"display_mode": {" teaser "},
		"unrelated":    {"ignored"},
	})

	want := map[string]string{"entity_field": "42", "display_mode": " teaser "}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("decoded values mismatch (-want +got):\n%s", diff)
	}

	empty := block.DecodeForm(form, url.Values{})
	if empty.Value("entity_field") != "" || empty.Value("display_mode") != "" {
		t.Fatalf("expected absent values to decode as empty strings")
	}
}

func TestFormState(t *testing.T) {
	var nilState *block.FormState
	if nilState.Value("x") != "" || nilState.Values() != nil {
		t.Fatalf("nil state should have no values")
	}

	seed := map[string]string{"a": "1"}
	state := block.NewFormState(seed)
	seed["a"] = "changed"
	state.SetValue("b", "2")
	if diff := cmp.Diff(map[string]string{"a": "1", "b": "2"}, state.Values()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

type stubPlugin struct {
	descriptor block.Descriptor
}

func (s stubPlugin) Descriptor() block.Descriptor { return s.descriptor }

func (s stubPlugin) DefaultConfiguration() block.Configuration { return block.Configuration{} }

func (s stubPlugin) Form(context.Context, block.Configuration, *block.FormState) (model.FormModel, error) {
	return model.FormModel{}, nil
}

func (s stubPlugin) Submit(_ context.Context, cfg block.Configuration, _ *block.FormState) (block.Configuration, error) {
	return cfg.Clone(), nil
}

func (s stubPlugin) Build(context.Context, block.Configuration) (block.Output, error) {
	return block.Output{}, nil
}
