package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-nodeblock/pkg/entity"
	"github.com/goliatone/go-nodeblock/pkg/model"
	"github.com/goliatone/go-nodeblock/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. Rendering a form
// prompts for every field and returns the collected answers.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	searcher     entity.Searcher
	searchLimit  int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		searchLimit:  DefaultSearchLimit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render prompts for each field in order. Values in opts.Values take
// precedence over field defaults as the prompt default; opts.Errors are shown
// before the matching prompt.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}
	if err := r.showErrors(ctx, opts.Errors[""]); err != nil {
		return nil, err
	}

	answers := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		if err := r.showErrors(ctx, opts.Errors[field.Name]); err != nil {
			return nil, err
		}
		current := field.DefaultString()
		if value, ok := opts.Values[field.Name]; ok {
			current = value
		}

		var (
			value string
			err   error
		)
		switch field.ResolvedWidget() {
		case model.WidgetRadios, model.WidgetSelect:
			value, err = r.promptChoice(ctx, field, current)
		case model.WidgetEntityAutocomplete:
			value, err = r.promptEntity(ctx, field, current)
		default:
			value, err = r.driver.Input(ctx, InputConfig{
				Message:   displayLabel(field),
				Default:   current,
				Help:      field.Description,
				Validator: requiredValidator(field),
			})
		}
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		answers[field.Name] = value
	}

	return r.serialize(answers)
}

func (r *Renderer) showErrors(ctx context.Context, messages []string) error {
	for _, message := range messages {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptChoice(ctx context.Context, field model.Field, current string) (string, error) {
	if len(field.Options) == 0 {
		return current, nil
	}
	labels := make([]string, len(field.Options))
	defaultIndex := -1
	for i, option := range field.Options {
		labels[i] = optionLabel(option)
		if option.Value == current {
			defaultIndex = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         field.Description,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", ErrNoSelection
	}
	return field.Options[idx].Value, nil
}

// promptEntity asks for a search term. Input already carrying an identifier
// ("Title (42)") or any input when no searcher is configured is returned
// verbatim. Otherwise matching entities are offered for selection and the
// choice is returned in autocomplete form.
func (r *Renderer) promptEntity(ctx context.Context, field model.Field, current string) (string, error) {
	targetType := field.Metadata[model.MetadataTargetType]
	if targetType == "" {
		targetType = entity.TypeNode
	}

	for {
		text, err := r.driver.Input(ctx, InputConfig{
			Message:   displayLabel(field),
			Default:   current,
			Help:      "Type part of the title to search, or an id in parentheses.",
			Validator: requiredValidator(field),
		})
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" || r.searcher == nil || entity.ParseAutocompleteInput(text) != text {
			return text, nil
		}

		matches, err := r.searcher.Search(ctx, targetType, text, r.searchLimit)
		if err != nil {
			return "", fmt.Errorf("search %s: %w", targetType, err)
		}
		if len(matches) == 0 {
			if err := r.driver.Info(ctx, fmt.Sprintf("%sNo %s matches %q.", r.theme.ErrorPrefix, targetType, text)); err != nil {
				return "", err
			}
			current = ""
			continue
		}

		labels := make([]string, len(matches))
		for i, match := range matches {
			labels[i] = entity.AutocompleteValue(match)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      labels,
			DefaultIndex: 0,
			PageSize:     r.searchLimit,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(labels) {
			return "", ErrNoSelection
		}
		return labels[idx], nil
	}
}

func (r *Renderer) serialize(answers map[string]string) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		values := make(url.Values, len(answers))
		for name, value := range answers {
			values.Set(name, value)
		}
		return []byte(values.Encode()), nil
	}
	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("tui: encode answers: %w", err)
	}
	return payload, nil
}

func displayLabel(field model.Field) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return field.Name
}

func optionLabel(option model.Option) string {
	if option.Label != "" {
		return option.Label
	}
	return option.Value
}

func requiredValidator(field model.Field) func(string) error {
	if !field.Required {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", displayLabel(field))
		}
		return nil
	}
}
