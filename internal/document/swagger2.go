package document

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/schema"
)

// SwaggerVersion is the version written to Swagger 2 documents.
const SwaggerVersion = "2.0"

// swaggerSections maps component sections to their Swagger 2 locations.
// Request bodies become body parameters.
var swaggerSections = map[string]string{
	component.KindSchemas:       "#/definitions/",
	component.KindResponses:     "#/responses/",
	component.KindRequestBodies: "#/parameters/",
}

// Swagger2 renders the registry as a Swagger 2 document. Schemas go to
// definitions, responses keep one schema (JSON when present) and request
// bodies become body parameters.
func Swagger2(reg *component.Registry, info Info) (*spec.Swagger, error) {
	keys := make(map[string]bool)
	for _, key := range reg.SchemaKeys() {
		keys[component.Reference(component.KindSchemas, key)] = true
	}
	for _, key := range reg.ResponseKeys() {
		keys[component.Reference(component.KindResponses, key)] = true
	}
	for _, key := range reg.RequestBodyKeys() {
		keys[component.Reference(component.KindRequestBodies, key)] = true
	}
	c := &swaggerConverter{known: keys}

	definitions := make(spec.Definitions)
	for _, key := range reg.SchemaKeys() {
		s, _ := reg.Schema(key)
		definitions[key] = c.schema(s)
	}

	responses := make(map[string]spec.Response)
	for _, key := range reg.ResponseKeys() {
		resp, _ := reg.Response(key)
		responses[key] = spec.Response{
			ResponseProps: spec.ResponseProps{
				Description: resp.Description,
				Schema:      c.primary(resp.Content),
			},
		}
	}

	parameters := make(map[string]spec.Parameter)
	for _, key := range reg.RequestBodyKeys() {
		body, _ := reg.RequestBody(key)
		param := spec.BodyParam(key, c.primary(body.Content)).WithDescription(body.Description)
		if body.Required {
			param = param.AsRequired()
		}
		parameters[key] = *param
	}

	if c.err != nil {
		return nil, c.err
	}

	swagger := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: SwaggerVersion,
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       info.Title,
					Version:     info.Version,
					Description: info.Description,
				},
			},
			Paths:       &spec.Paths{Paths: make(map[string]spec.PathItem)},
			Definitions: definitions,
		},
	}
	if len(responses) > 0 {
		swagger.Responses = responses
	}
	if len(parameters) > 0 {
		swagger.Parameters = parameters
	}
	return swagger, nil
}

type swaggerConverter struct {
	known map[string]bool
	err   error
}

// ref rewrites a component reference to its Swagger 2 location.
func (c *swaggerConverter) ref(ref string) spec.Ref {
	kind, key, ok := component.KeyFromReference(ref)
	prefix, known := swaggerSections[kind]
	if !ok || !known || !c.known[ref] {
		if c.err == nil {
			c.err = fmt.Errorf("%w: %s", ErrUnresolvedReference, ref)
		}
		return spec.Ref{}
	}
	return spec.MustCreateRef(prefix + key)
}

func (c *swaggerConverter) schemaRef(r *schema.SchemaRef) *spec.Schema {
	if r == nil {
		return nil
	}
	if r.IsRef() {
		return &spec.Schema{SchemaProps: spec.SchemaProps{Ref: c.ref(r.Ref)}}
	}
	out := c.schema(r.Value)
	return &out
}

// schema converts a schema. Swagger 2 has no deprecated keyword, so
// deprecation is written as the x-deprecated extension.
func (c *swaggerConverter) schema(s *schema.Schema) spec.Schema {
	if s == nil {
		return spec.Schema{}
	}

	out := spec.Schema{
		SchemaProps: spec.SchemaProps{
			Title:       s.Title,
			Format:      s.Format,
			Description: s.Description,
			Default:     s.Default,
			Pattern:     s.Pattern,
			Minimum:     s.Minimum,
			Maximum:     s.Maximum,
			MinLength:   s.MinLength,
			MaxLength:   s.MaxLength,
			Required:    s.Required,
		},
		SwaggerSchemaProps: spec.SwaggerSchemaProps{
			Example: s.Example,
		},
	}
	if s.Kind != "" {
		out.Type = spec.StringOrArray{s.Kind}
	}
	for _, v := range s.Enum {
		out.Enum = append(out.Enum, v)
	}
	if s.Properties.Len() > 0 {
		out.Properties = make(spec.SchemaProperties, s.Properties.Len())
		for _, name := range s.Properties.Keys() {
			prop, _ := s.Properties.Get(name)
			out.Properties[name] = *c.schemaRef(prop)
		}
	}
	if s.Items != nil {
		out.Items = &spec.SchemaOrArray{Schema: c.schemaRef(s.Items)}
	}
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = &spec.SchemaOrBool{Allows: true, Schema: c.schemaRef(s.AdditionalProperties)}
	}
	for k, v := range s.Extensions {
		out.AddExtension(k, v)
	}
	if s.Deprecated {
		out.AddExtension("x-deprecated", true)
	}
	return out
}

// primary picks the schema of a JSON media type, else of the first media
// type in sorted order.
func (c *swaggerConverter) primary(content map[string]*schema.MediaType) *spec.Schema {
	if len(content) == 0 {
		return nil
	}
	media, ok := content["application/json"]
	if !ok {
		media = content[schema.MediaTypes(content)[0]]
	}
	return c.schemaRef(media.Schema)
}
