package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/render"
	rendertemplate "github.com/goliatone/go-nodeblock/pkg/render/template"
	"github.com/goliatone/go-nodeblock/pkg/render/template/gotemplate"
	"github.com/goliatone/go-nodeblock/pkg/widgets"
)

const (
	formTemplate       = "templates/form.tmpl"
	defaultSubmitLabel = "Save block"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	script           string
	widgets          *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRuntimeScript references the autocomplete runtime script after the
// form.
func WithRuntimeScript(src string) Option {
	return func(cfg *config) {
		cfg.script = strings.TrimSpace(src)
	}
}

// WithWidgets replaces the registry that picks the component template of
// fields without an explicit widget.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// Renderer produces the HTML admin form for a block configuration.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	script    string
	widgets   *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), widgets: widgets.NewRegistry()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, script: cfg.script, widgets: cfg.widgets}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}

	if err := r.widgets.Decorate(&form); err != nil {
		return nil, fmt.Errorf("vanilla renderer: resolve widgets: %w", err)
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form": buildFormView(form, options, r.script),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type formView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Action      string       `json:"action"`
	Errors      []string     `json:"errors"`
	Fields      []fieldView  `json:"fields"`
	Hidden      []hiddenView `json:"hidden"`
	SubmitLabel string       `json:"submit_label"`
	Script      string       `json:"script"`
}

type fieldView struct {
	Component       string       `json:"component"`
	Name            string       `json:"name"`
	ID              string       `json:"id"`
	LabelID         string       `json:"label_id"`
	Label           string       `json:"label"`
	Description     string       `json:"description"`
	Value           string       `json:"value"`
	Required        bool         `json:"required"`
	Options         []optionView `json:"options"`
	Errors          []string     `json:"errors"`
	AutocompleteURL string       `json:"autocomplete_url"`
	TargetType      string       `json:"target_type"`
}

type optionView struct {
	ID      string `json:"id"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func buildFormView(form model.FormModel, options render.RenderOptions, script string) formView {
	view := formView{
		ID:          strings.ToLower(strings.ReplaceAll(strings.TrimSpace(form.ID), "_", "-")),
		Title:       form.Title,
		Action:      options.Action,
		Errors:      options.Errors[""],
		SubmitLabel: defaultSubmitLabel,
		Script:      script,
	}
	if label := strings.TrimSpace(options.SubmitLabel); label != "" {
		view.SubmitLabel = label
	}

	for _, field := range form.Fields {
		view.Fields = append(view.Fields, buildFieldView(field, options))
	}
	for _, hidden := range render.SortedHiddenFields(options.HiddenFields) {
		view.Hidden = append(view.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}
	return view
}

func buildFieldView(field model.Field, options render.RenderOptions) fieldView {
	value := field.DefaultString()
	if submitted, ok := options.Values[field.Name]; ok {
		value = submitted
	}

	view := fieldView{
		Component:   field.ResolvedWidget(),
		Name:        field.Name,
		ID:          controlID(field.Name),
		LabelID:     labelID(field.Name),
		Label:       field.Label,
		Description: field.Description,
		Value:       value,
		Required:    field.Required,
		Errors:      options.Errors[field.Name],
	}
	if view.Label == "" {
		view.Label = field.Name
	}

	if view.Component == model.WidgetEntityAutocomplete {
		view.TargetType = field.Metadata[model.MetadataTargetType]
		view.AutocompleteURL = joinURL(options.AutocompleteURL, view.TargetType)
	}

	for _, opt := range field.Options {
		view.Options = append(view.Options, optionView{
			ID:      optionID(field.Name, opt.Value),
			Value:   opt.Value,
			Label:   opt.Label,
			Checked: opt.Value == value,
		})
	}
	return view
}
