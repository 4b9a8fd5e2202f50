package vanilla_test

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/render"
	"github.com/goliatone/go-nodeblock/pkg/renderers/vanilla"
	"github.com/goliatone/go-nodeblock/pkg/testsupport"
	"github.com/goliatone/go-nodeblock/pkg/widgets"
)

func configurationForm() model.FormModel {
	return model.FormModel{
		ID:    "Custom_block",
		Title: "custom block",
		Fields: []model.Field{
			{
				Name:     "entity_field",
				Type:     model.FieldTypeString,
				Widget:   model.WidgetEntityAutocomplete,
				Label:    "Entity Field",
				Default:  "Launch Announcement (42)",
				Metadata: map[string]string{model.MetadataTargetType: "node"},
			},
			{
				Name:    "display_mode",
				Type:    model.FieldTypeString,
				Widget:  model.WidgetRadios,
				Label:   "Display Mode",
				Default: "full",
				Options: []model.Option{
					{Value: "teaser", Label: "Teaser"},
					{Value: "full", Label: "Full content"},
				},
			},
		},
	}
}

func TestRenderer_RenderAutocompleteAndRadios(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), configurationForm(), render.RenderOptions{
		Action:          "/admin/blocks/abc/configure",
		AutocompleteURL: "/admin/autocomplete",
		HiddenFields: render.MergeHiddenFields(nil,
			render.FormID("Custom_block"),
			render.CSRFToken("tok"),
		),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`id="custom-block"`,
		`action="/admin/blocks/abc/configure"`,
		`name="entity_field" value="Launch Announcement (42)"`,
		`data-target-type="node"`,
		`data-autocomplete-path="/admin/autocomplete/node"`,
		`id="edit-display-mode-full" name="display_mode" value="full" checked`,
		`<label for="edit-display-mode-teaser">Teaser</label>`,
		`<input type="hidden" name="form_id" value="Custom_block">`,
		`<input type="hidden" name="form_token" value="tok">`,
		`Save block`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, `value="teaser" checked`) {
		t.Fatalf("only the default option should be checked:\n%s", html)
	}
	if strings.Index(html, `name="form_id"`) > strings.Index(html, `name="form_token"`) {
		t.Fatalf("hidden fields should be sorted by name:\n%s", html)
	}
}

func TestRenderer_SubmittedValuesAndErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), configurationForm(), render.RenderOptions{
		Values: map[string]string{"entity_field": "7", "display_mode": "teaser"},
		Errors: map[string][]string{
			"":             {"Could not save block."},
			"entity_field": {"Unknown node."},
		},
		SubmitLabel: "Update",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`name="entity_field" value="7"`,
		`value="teaser" checked`,
		`Could not save block.`,
		`<div class="form-item__error">Unknown node.</div>`,
		`form-item--entity-autocomplete form-item--error`,
		`>Update</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "data-autocomplete-path") {
		t.Fatalf("autocomplete path should be omitted without a base URL:\n%s", html)
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := model.FormModel{
		ID:     "block_task_block_task",
		Fields: []model.Field{{Name: "entity_field", Label: "Node Reference"}},
	}
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{
		Values: map[string]string{"entity_field": `"><script>alert(1)</script>`},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<script>") {
		t.Fatalf("submitted value was not escaped:\n%s", output)
	}
	if !strings.Contains(string(output), `form-item--textfield`) {
		t.Fatalf("expected textfield component:\n%s", output)
	}
}

func TestRenderer_TemplateOverride(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl": {Data: []byte(`<form data-id="{{ form.id }}">{% for field in form.fields %}[{{ field.component }}:{{ field.name }}={{ field.value }}]{% endfor %}</form>`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := testsupport.MustLoadFormModel(t, filepath.Join("testdata", "configuration_form.json"))
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "template_override.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, append(output, '\n')) {
		return
	}
	want := strings.TrimSpace(string(testsupport.MustReadGolden(t, goldenPath)))
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_FixtureMatchesBuiltForm(t *testing.T) {
	form := testsupport.MustLoadFormModel(t, filepath.Join("testdata", "configuration_form.json"))
	if diff := testsupport.CompareGolden(configurationForm(), form); diff != "" {
		t.Fatalf("fixture drifted from configurationForm (-want +got):\n%s", diff)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderer_RuntimeScript(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithRuntimeScript("/assets/nodeblock-autocomplete.js"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), configurationForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(output), `<script src="/assets/nodeblock-autocomplete.js" defer></script>`) {
		t.Fatalf("expected runtime script tag:\n%s", output)
	}

	plain, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err = plain.Render(testsupport.Context(), configurationForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "<script") {
		t.Fatalf("no script expected without runtime script option:\n%s", output)
	}
}

func TestRenderer_WidgetsResolveComponents(t *testing.T) {
	form := model.FormModel{
		ID: "block_task_block_task",
		Fields: []model.Field{
			{Name: "entity_field", Type: model.FieldTypeString, Metadata: map[string]string{model.MetadataTargetType: "node"}},
			{Name: "note", Type: model.FieldTypeString},
		},
	}

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{AutocompleteURL: "/suggest"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	if !strings.Contains(html, `data-autocomplete-path="/suggest/node"`) {
		t.Fatalf("expected entity reference to render as autocomplete:\n%s", html)
	}
	if !strings.Contains(html, `name="note"`) {
		t.Fatalf("expected plain text field:\n%s", html)
	}

	custom := widgets.NewRegistry()
	custom.Register(model.WidgetTextfield, 100, func(model.Field) bool { return true })
	renderer, err = vanilla.New(vanilla.WithWidgets(custom))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err = renderer.Render(testsupport.Context(), form, render.RenderOptions{AutocompleteURL: "/suggest"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(output), "data-autocomplete-path") {
		t.Fatalf("custom registry should force text fields:\n%s", output)
	}
}
