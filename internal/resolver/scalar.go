package resolver

import (
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

// mapScalar renders primitives and well-known value types from fixed tables.
func (s *Service) mapScalar(t domain.TypeDescriptor, c domain.Classification) *entry {
	if c.Kind == domain.KindPrimitive {
		if scalar, ok := domain.PrimitiveScalar(c.Primitive); ok {
			return localEntry(schema.ScalarSchema(scalar))
		}
		s.debug.Printf("resolver: unsupported primitive %s, using empty schema", t)
		return localEntry(schema.EmptySchema())
	}

	scalar, _ := s.wellKnown(t)
	return localEntry(schema.ScalarSchema(scalar))
}

// wellKnown looks t up among configured and built-in value types.
func (s *Service) wellKnown(t domain.TypeDescriptor) (domain.Scalar, bool) {
	if scalar, ok := s.scalars[t.Name()]; ok {
		return scalar, true
	}
	return domain.WellKnownScalar(t.Name())
}
