// Package apidoc describes the block admin HTTP API as an OpenAPI 3 document
// built from the plugins registered in a catalog.
package apidoc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-nodeblock/pkg/block"
	"github.com/goliatone/go-nodeblock/pkg/model"
)

const (
	contentHTML = "text/html"
	contentForm = "application/x-www-form-urlencoded"
	schemaRef   = "#/components/schemas/"
)

// Info names the document.
type Info struct {
	Title   string
	Version string
}

// Build returns the OpenAPI document for the admin API. Each plugin
// contributes a configuration schema derived from its default configuration
// and admin form.
func Build(ctx context.Context, catalog *block.Catalog, info Info) (*openapi3.T, error) {
	if catalog == nil {
		return nil, fmt.Errorf("apidoc: catalog is required")
	}
	if info.Title == "" {
		info.Title = "nodeblock admin API"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: info.Title, Version: info.Version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	pluginIDs := make([]any, 0)
	for _, id := range catalog.List() {
		pluginIDs = append(pluginIDs, id)
	}

	schemas := doc.Components.Schemas
	schemas["Descriptor"] = openapi3.NewSchemaRef("", descriptorSchema(pluginIDs))
	schemas["Placement"] = openapi3.NewSchemaRef("", placementSchema(pluginIDs))
	schemas["Suggestion"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("value", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema()))
	schemas["Region"] = openapi3.NewSchemaRef("", regionSchema())

	configRefs := make(openapi3.SchemaRefs, 0, len(pluginIDs))
	for _, id := range catalog.List() {
		plugin, err := catalog.Get(id)
		if err != nil {
			return nil, err
		}
		schema, err := configurationSchema(ctx, plugin)
		if err != nil {
			return nil, fmt.Errorf("apidoc: configuration schema for %q: %w", id, err)
		}
		name := "Configuration_" + id
		schemas[name] = openapi3.NewSchemaRef("", schema)
		configRefs = append(configRefs, ref(name, schema))
	}
	configuration := openapi3.NewSchema()
	configuration.OneOf = configRefs
	configuration.Description = "Submitted block configuration. Fields depend on the placement's plugin."

	addOperations(doc, schemas, configuration)
	return doc, nil
}

func addOperations(doc *openapi3.T, schemas openapi3.Schemas, configuration *openapi3.Schema) {
	idParam := openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()).WithDescription("Placement id.")
	regionParam := openapi3.NewPathParameter("region").WithSchema(openapi3.NewStringSchema()).WithDescription("Region name.")

	placementRef := ref("Placement", schemas["Placement"].Value)

	doc.AddOperation("/admin/plugins", http.MethodGet, operation("listPlugins", "List block plugins.",
		jsonResponse(http.StatusOK, "Registered plugins.", openapi3.NewArraySchema().WithItems(schemas["Descriptor"].Value), "Descriptor")))

	doc.AddOperation("/admin/regions", http.MethodGet, operation("listRegions", "List regions holding blocks.",
		jsonResponse(http.StatusOK, "Region names.", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()), "")))

	listRegion := operation("listRegionBlocks", "List placements of a region in render order.",
		jsonResponse(http.StatusOK, "Placements.", openapi3.NewArraySchema().WithItems(schemas["Placement"].Value), "Placement"))
	listRegion.AddParameter(regionParam)
	doc.AddOperation("/admin/regions/{region}/blocks", http.MethodGet, listRegion)

	place := operation("placeBlock", "Place a block in a region with the plugin's default configuration.",
		withRef(jsonResponse(http.StatusCreated, "Placed block.", nil, ""), placementRef),
		textResponse(http.StatusBadRequest, "Unknown plugin or invalid weight."))
	place.AddParameter(regionParam)
	place.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithContent(openapi3.Content{
		contentForm: openapi3.NewMediaType().WithSchema(openapi3.NewObjectSchema().
			WithProperty("plugin", openapi3.NewStringSchema()).
			WithProperty("weight", openapi3.NewIntegerSchema())),
	})}
	doc.AddOperation("/admin/regions/{region}/blocks", http.MethodPost, place)

	get := operation("getBlock", "Get a placement.",
		withRef(jsonResponse(http.StatusOK, "Placement.", nil, ""), placementRef),
		textResponse(http.StatusNotFound, "Unknown placement."))
	get.AddParameter(idParam)
	doc.AddOperation("/admin/blocks/{id}", http.MethodGet, get)

	remove := operation("removeBlock", "Remove a placement and its configuration.",
		emptyResponse(http.StatusNoContent, "Removed."),
		textResponse(http.StatusNotFound, "Unknown placement."))
	remove.AddParameter(idParam)
	doc.AddOperation("/admin/blocks/{id}", http.MethodDelete, remove)

	form := operation("blockForm", "Render the block configuration form.",
		htmlResponse(http.StatusOK, "Configuration form."),
		textResponse(http.StatusNotFound, "Unknown placement."))
	form.AddParameter(idParam)
	doc.AddOperation("/admin/blocks/{id}/configure", http.MethodGet, form)

	configure := operation("configureBlock", "Submit the block configuration form.",
		emptyResponse(http.StatusSeeOther, "Saved; redirects to the region."),
		htmlResponse(http.StatusForbidden, "Form token mismatch."),
		textResponse(http.StatusNotFound, "Unknown placement."))
	configure.AddParameter(idParam)
	configure.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithContent(openapi3.Content{
		contentForm: openapi3.NewMediaType().WithSchema(configuration),
	})}
	doc.AddOperation("/admin/blocks/{id}/configure", http.MethodPost, configure)

	autocomplete := operation("autocomplete", "Suggest entities whose label contains q.",
		jsonResponse(http.StatusOK, "Up to ten suggestions.", openapi3.NewArraySchema().WithItems(schemas["Suggestion"].Value), "Suggestion"))
	autocomplete.AddParameter(openapi3.NewPathParameter("entityType").WithSchema(openapi3.NewStringSchema()))
	autocomplete.AddParameter(openapi3.NewQueryParameter("q").WithSchema(openapi3.NewStringSchema()))
	doc.AddOperation("/admin/autocomplete/{entityType}", http.MethodGet, autocomplete)

	renderRegion := operation("renderRegion", "Render the blocks of a region.",
		withJSON(htmlResponse(http.StatusOK, "Composed region."), ref("Region", schemas["Region"].Value)))
	renderRegion.AddParameter(regionParam)
	doc.AddOperation("/regions/{region}", http.MethodGet, renderRegion)
}

func descriptorSchema(pluginIDs []any) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema().WithEnum(pluginIDs...)).
		WithProperty("adminLabel", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema())
	schema.Required = []string{"id", "adminLabel", "category"}
	return schema
}

func placementSchema(pluginIDs []any) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("pluginId", openapi3.NewStringSchema().WithEnum(pluginIDs...)).
		WithProperty("region", openapi3.NewStringSchema()).
		WithProperty("weight", openapi3.NewIntegerSchema()).
		WithProperty("configuration", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("createdAt", openapi3.NewDateTimeSchema()).
		WithProperty("updatedAt", openapi3.NewDateTimeSchema())
	schema.Required = []string{"id", "pluginId", "region", "weight", "configuration"}
	return schema
}

func regionSchema() *openapi3.Schema {
	blockSchema := openapi3.NewObjectSchema().
		WithProperty("placementId", openapi3.NewStringSchema()).
		WithProperty("pluginId", openapi3.NewStringSchema()).
		WithProperty("markup", openapi3.NewStringSchema()).
		WithProperty("cacheTags", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("broken", openapi3.NewBoolSchema())
	return openapi3.NewObjectSchema().
		WithProperty("region", openapi3.NewStringSchema()).
		WithProperty("blocks", openapi3.NewArraySchema().WithItems(blockSchema))
}

// configurationSchema lists the plugin's configuration keys. Keys backed by a
// choice field carry the field options as an enum.
func configurationSchema(ctx context.Context, plugin block.Plugin) (*openapi3.Schema, error) {
	defaults := plugin.DefaultConfiguration()
	form, err := plugin.Form(ctx, defaults.Clone(), nil)
	if err != nil {
		return nil, err
	}

	descriptor := plugin.Descriptor()
	schema := openapi3.NewObjectSchema()
	schema.Title = descriptor.AdminLabel
	for key := range defaults {
		property := openapi3.NewStringSchema()
		if field, ok := form.Field(key); ok {
			property.Title = field.Label
			property.Description = widgetHint(field)
			if len(field.Options) > 0 {
				values := make([]any, 0, len(field.Options))
				for _, option := range field.Options {
					values = append(values, option.Value)
				}
				property.Enum = values
			}
		}
		schema.WithProperty(key, property)
	}
	return schema, nil
}

func widgetHint(field model.Field) string {
	if field.ResolvedWidget() == model.WidgetEntityAutocomplete {
		return fmt.Sprintf("Identifier of the referenced %s, or an autocomplete value such as \"Title (42)\".", field.Metadata[model.MetadataTargetType])
	}
	return ""
}

func operation(id, summary string, responses ...*responseSpec) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(responses[0].status, &openapi3.ResponseRef{Value: responses[0].response}))
	for _, spec := range responses[1:] {
		op.Responses.Set(fmt.Sprint(spec.status), &openapi3.ResponseRef{Value: spec.response})
	}
	return op
}

type responseSpec struct {
	status   int
	response *openapi3.Response
}

func jsonResponse(status int, description string, schema *openapi3.Schema, itemRef string) *responseSpec {
	resp := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		if itemRef != "" && schema.Items != nil {
			schema.Items = ref(itemRef, schema.Items.Value)
		}
		resp = resp.WithJSONSchema(schema)
	}
	return &responseSpec{status: status, response: resp}
}

func withRef(spec *responseSpec, schema *openapi3.SchemaRef) *responseSpec {
	spec.response = spec.response.WithJSONSchemaRef(schema)
	return spec
}

func withJSON(spec *responseSpec, schema *openapi3.SchemaRef) *responseSpec {
	if spec.response.Content == nil {
		spec.response.Content = openapi3.Content{}
	}
	spec.response.Content["application/json"] = openapi3.NewMediaType().WithSchemaRef(schema)
	return spec
}

func htmlResponse(status int, description string) *responseSpec {
	resp := openapi3.NewResponse().WithDescription(description).WithContent(openapi3.Content{
		contentHTML: openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
	})
	return &responseSpec{status: status, response: resp}
}

func textResponse(status int, description string) *responseSpec {
	resp := openapi3.NewResponse().WithDescription(description).WithContent(openapi3.Content{
		"text/plain": openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema()),
	})
	return &responseSpec{status: status, response: resp}
}

func emptyResponse(status int, description string) *responseSpec {
	return &responseSpec{status: status, response: openapi3.NewResponse().WithDescription(description)}
}

func ref(name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(schemaRef+name, schema)
}
