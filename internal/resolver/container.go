package resolver

import (
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

// mapContainer strips one wrapper layer. Lists, sets and arrays become
// arrays of their element; maps become objects whose additional properties
// describe the value type, the key being assumed textual; an optional
// surfaces its inner type unchanged.
func (s *Service) mapContainer(ctx *Context, t domain.TypeDescriptor, c domain.Classification) (*entry, error) {
	args := s.types.TypeArguments(t)
	if len(args) == 0 {
		s.debug.Printf("resolver: container %s has no type arguments, using empty schema", t)
		return localEntry(schema.EmptySchema()), nil
	}

	if c.Kind == domain.KindArray {
		return s.arrayOf(ctx, args[0])
	}

	switch c.Container {
	case domain.ContainerOptional:
		return s.dispatch(ctx, args[0])
	case domain.ContainerList, domain.ContainerSet:
		return s.arrayOf(ctx, args[0])
	case domain.ContainerMap:
		values, err := s.element(ctx, args[len(args)-1])
		if err != nil {
			return nil, err
		}
		return localEntry(schema.MapSchema(values)), nil
	}

	s.debug.Printf("resolver: unsupported container %s, using empty schema", t)
	return localEntry(schema.EmptySchema()), nil
}

func (s *Service) arrayOf(ctx *Context, elem domain.TypeDescriptor) (*entry, error) {
	items, err := s.element(ctx, elem)
	if err != nil {
		return nil, err
	}
	return localEntry(schema.ArraySchema(items)), nil
}

// element resolves a container element. Objects and enums are referenced
// exactly as they are from object properties.
func (s *Service) element(ctx *Context, t domain.TypeDescriptor) (*schema.SchemaRef, error) {
	e, err := s.dispatch(ctx, t)
	if err != nil {
		return nil, err
	}
	return e.use(), nil
}
