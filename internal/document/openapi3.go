// Package document renders a components registry as an OpenAPI 3 or
// Swagger 2 document.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/schema"
)

// OpenAPIVersion is the version written to OpenAPI 3 documents.
const OpenAPIVersion = "3.0.3"

var (
	// ErrInvalidDocument is returned when a rendered document fails
	// validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrUnresolvedReference is returned when a reference points at a
	// component that is not in the registry.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// Info is the document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// converter turns registry schemas into kin-openapi schemas and remembers
// every reference so it can be linked once all components exist.
type converter struct {
	refs []*openapi3.SchemaRef
}

// OpenAPI3 renders the registry as an OpenAPI 3 document. References are
// linked to their component values so the document can be validated.
func OpenAPI3(reg *component.Registry, info Info) (*openapi3.T, error) {
	c := &converter{}

	schemas := make(openapi3.Schemas)
	for _, key := range reg.SchemaKeys() {
		s, _ := reg.Schema(key)
		schemas[key] = &openapi3.SchemaRef{Value: c.schema(s)}
	}

	responses := make(openapi3.ResponseBodies)
	for _, key := range reg.ResponseKeys() {
		resp, _ := reg.Response(key)
		value := &openapi3.Response{Content: c.content(resp.Content)}
		if resp.Description != "" {
			value.WithDescription(resp.Description)
		}
		responses[key] = &openapi3.ResponseRef{Value: value}
	}

	bodies := make(openapi3.RequestBodies)
	for _, key := range reg.RequestBodyKeys() {
		body, _ := reg.RequestBody(key)
		bodies[key] = &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
			Description: body.Description,
			Required:    body.Required,
			Content:     c.content(body.Content),
		}}
	}

	if err := c.link(schemas); err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: schemas,
		},
	}
	if len(responses) > 0 {
		doc.Components.Responses = responses
	}
	if len(bodies) > 0 {
		doc.Components.RequestBodies = bodies
	}
	return doc, nil
}

// ValidateOpenAPI3 checks a document against the OpenAPI 3 rules. Defaults
// and examples are free-form strings taken from source annotations and are
// not checked against their schemas.
func ValidateOpenAPI3(ctx context.Context, doc *openapi3.T) error {
	err := doc.Validate(ctx,
		openapi3.DisableSchemaDefaultsValidation(),
		openapi3.DisableExamplesValidation(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

func (c *converter) ref(r *schema.SchemaRef) *openapi3.SchemaRef {
	if r == nil {
		return nil
	}
	if r.IsRef() {
		out := &openapi3.SchemaRef{Ref: r.Ref}
		c.refs = append(c.refs, out)
		return out
	}
	return &openapi3.SchemaRef{Value: c.schema(r.Value)}
}

func (c *converter) schema(s *schema.Schema) *openapi3.Schema {
	if s == nil {
		return &openapi3.Schema{}
	}

	out := &openapi3.Schema{
		Title:       s.Title,
		Format:      s.Format,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Default:     s.Default,
		Example:     s.Example,
		Pattern:     s.Pattern,
		Min:         s.Minimum,
		Max:         s.Maximum,
		Required:    s.Required,
	}
	if s.Kind != "" {
		out.Type = &openapi3.Types{s.Kind}
	}
	if s.MinLength != nil && *s.MinLength > 0 {
		out.MinLength = uint64(*s.MinLength)
	}
	if s.MaxLength != nil && *s.MaxLength >= 0 {
		maxLength := uint64(*s.MaxLength)
		out.MaxLength = &maxLength
	}
	for _, v := range s.Enum {
		out.Enum = append(out.Enum, v)
	}
	if s.Properties.Len() > 0 {
		out.Properties = make(openapi3.Schemas, s.Properties.Len())
		for _, name := range s.Properties.Keys() {
			prop, _ := s.Properties.Get(name)
			out.Properties[name] = c.ref(prop)
		}
	}
	out.Items = c.ref(s.Items)
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = openapi3.AdditionalProperties{Schema: c.ref(s.AdditionalProperties)}
	}
	if len(s.Extensions) > 0 {
		out.Extensions = make(map[string]any, len(s.Extensions))
		for k, v := range s.Extensions {
			out.Extensions[k] = v
		}
	}
	return out
}

func (c *converter) content(content map[string]*schema.MediaType) openapi3.Content {
	if len(content) == 0 {
		return nil
	}
	out := make(openapi3.Content, len(content))
	for _, mt := range schema.MediaTypes(content) {
		media := content[mt]
		out[mt] = &openapi3.MediaType{Schema: c.ref(media.Schema), Example: media.Example}
	}
	return out
}

func (c *converter) link(schemas openapi3.Schemas) error {
	for _, r := range c.refs {
		kind, key, ok := component.KeyFromReference(r.Ref)
		if !ok || kind != component.KindSchemas {
			return fmt.Errorf("%w: %s", ErrUnresolvedReference, r.Ref)
		}
		target, ok := schemas[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnresolvedReference, r.Ref)
		}
		r.Value = target.Value
	}
	return nil
}
