// Package schema holds the normalized schema model produced by the resolver
// and the merge rules used to reconcile fragments of the same component.
package schema

import (
	"errors"

	"github.com/griffnb/core-schema/internal/domain"
)

// Schema is a normalized schema fragment. An empty Kind is the empty-typed
// schema, which accepts any value.
type Schema struct {
	Kind                 string
	Format               string
	Title                string
	Description          string
	Deprecated           bool
	Properties           *Properties
	Items                *SchemaRef
	AdditionalProperties *SchemaRef
	Default              any
	Example              any
	Pattern              string
	Minimum              *float64
	Maximum              *float64
	MinLength            *int64
	MaxLength            *int64
	Required             []string
	Enum                 []string
	Extensions           map[string]any
}

// SchemaRef holds either a Ref to a named component or an inline Value,
// never both.
type SchemaRef struct {
	Ref   string
	Value *Schema
}

// SchemaMap maps component keys to schemas.
type SchemaMap map[string]*Schema

// NewRef builds a reference to a component.
func NewRef(ref string) *SchemaRef {
	return &SchemaRef{Ref: ref}
}

// Inline wraps a schema for inline use.
func Inline(s *Schema) *SchemaRef {
	return &SchemaRef{Value: s}
}

// IsRef reports whether r points at a named component.
func (r *SchemaRef) IsRef() bool {
	return r != nil && r.Ref != ""
}

// Clone returns a deep copy of r.
func (r *SchemaRef) Clone() *SchemaRef {
	if r == nil {
		return nil
	}
	if r.Ref != "" {
		return NewRef(r.Ref)
	}
	return Inline(r.Value.Clone())
}

// PrimitiveSchema builds a primitive schema.
func PrimitiveSchema(kind string) *Schema {
	return &Schema{Kind: kind}
}

// FormattedSchema builds a primitive schema with a format.
func FormattedSchema(kind, format string) *Schema {
	return &Schema{Kind: kind, Format: format}
}

// ScalarSchema builds the schema of a built-in scalar.
func ScalarSchema(s domain.Scalar) *Schema {
	return &Schema{Kind: s.Type, Format: s.Format}
}

// EmptySchema builds the empty-typed schema.
func EmptySchema() *Schema {
	return &Schema{}
}

// ObjectSchema builds an object schema with no properties yet.
func ObjectSchema() *Schema {
	return &Schema{Kind: domain.OBJECT, Properties: NewProperties()}
}

// ArraySchema builds an array of items.
func ArraySchema(items *SchemaRef) *Schema {
	return &Schema{Kind: domain.ARRAY, Items: items}
}

// MapSchema builds an object whose values are described by values.
func MapSchema(values *SchemaRef) *Schema {
	return &Schema{Kind: domain.OBJECT, AdditionalProperties: values}
}

// IsEmpty reports whether s is the empty-typed schema.
func (s *Schema) IsEmpty() bool {
	return s == nil || (s.Kind == "" && s.Format == "" && s.Properties.Len() == 0 &&
		s.Items == nil && s.AdditionalProperties == nil && len(s.Enum) == 0)
}

// IsRequired reports whether name is listed as required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// AddRequired marks a property required, keeping the first position.
func (s *Schema) AddRequired(name string) {
	if !s.IsRequired(name) {
		s.Required = append(s.Required, name)
	}
}

// SetExtension stores an x- extension.
func (s *Schema) SetExtension(key string, value any) {
	if s.Extensions == nil {
		s.Extensions = make(map[string]any)
	}
	s.Extensions[key] = value
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Properties = s.Properties.Clone()
	out.Items = s.Items.Clone()
	out.AdditionalProperties = s.AdditionalProperties.Clone()
	out.Minimum = cloneFloat(s.Minimum)
	out.Maximum = cloneFloat(s.Maximum)
	out.MinLength = cloneInt(s.MinLength)
	out.MaxLength = cloneInt(s.MaxLength)
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Enum != nil {
		out.Enum = append([]string(nil), s.Enum...)
	}
	if s.Extensions != nil {
		out.Extensions = make(map[string]any, len(s.Extensions))
		for k, v := range s.Extensions {
			out.Extensions[k] = v
		}
	}
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// IsPrimitiveType determines whether the type name is a primitive type.
func IsPrimitiveType(typeName string) bool {
	switch typeName {
	case domain.STRING, domain.NUMBER, domain.INTEGER, domain.BOOLEAN, domain.ARRAY, domain.OBJECT:
		return true
	}
	return false
}

// BuildCustomSchema builds a schema from a type list such as
// "array,integer" or "object,string".
func BuildCustomSchema(types []string) (*Schema, error) {
	if len(types) == 0 {
		return nil, nil
	}

	switch types[0] {
	case domain.PRIMITIVE:
		if len(types) == 1 {
			return nil, errors.New("need primitive type after primitive")
		}
		return BuildCustomSchema(types[1:])
	case domain.ARRAY:
		if len(types) == 1 {
			return nil, errors.New("need array item type after array")
		}

		items, err := BuildCustomSchema(types[1:])
		if err != nil {
			return nil, err
		}

		return ArraySchema(Inline(items)), nil
	case domain.OBJECT:
		if len(types) == 1 {
			return PrimitiveSchema(types[0]), nil
		}

		values, err := BuildCustomSchema(types[1:])
		if err != nil {
			return nil, err
		}

		return MapSchema(Inline(values)), nil
	default:
		if !IsPrimitiveType(types[0]) {
			return nil, errors.New(types[0] + " is not basic types")
		}
		return PrimitiveSchema(types[0]), nil
	}
}
