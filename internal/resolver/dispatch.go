package resolver

import (
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

type mapper int

const (
	scalarMapper mapper = iota
	containerMapper
	enumMapper
	objectMapper
)

type route struct {
	name    string
	matches func(s *Service, t domain.TypeDescriptor, c domain.Classification) bool
	mapper  mapper
}

// routes is the dispatch table. The first matching route wins, so the
// object route must stay last.
var routes = []route{
	{
		name: "primitive",
		matches: func(_ *Service, _ domain.TypeDescriptor, c domain.Classification) bool {
			return c.Kind == domain.KindPrimitive
		},
		mapper: scalarMapper,
	},
	{
		name: "array",
		matches: func(_ *Service, _ domain.TypeDescriptor, c domain.Classification) bool {
			return c.Kind == domain.KindArray
		},
		mapper: containerMapper,
	},
	{
		name: "enum",
		matches: func(_ *Service, _ domain.TypeDescriptor, c domain.Classification) bool {
			return c.Kind == domain.KindEnum
		},
		mapper: enumMapper,
	},
	{
		name: "well-known",
		matches: func(s *Service, t domain.TypeDescriptor, _ domain.Classification) bool {
			_, ok := s.wellKnown(t)
			return ok
		},
		mapper: scalarMapper,
	},
	{
		name: "container",
		matches: func(_ *Service, _ domain.TypeDescriptor, c domain.Classification) bool {
			return c.Kind == domain.KindContainer
		},
		mapper: containerMapper,
	},
	{
		name: "object",
		matches: func(_ *Service, _ domain.TypeDescriptor, _ domain.Classification) bool {
			return true
		},
		mapper: objectMapper,
	},
}

func (s *Service) route(t domain.TypeDescriptor, c domain.Classification) route {
	for _, r := range routes {
		if r.matches(s, t, c) {
			return r
		}
	}
	return routes[len(routes)-1]
}

// dispatch resolves t through the context, invoking a mapper only when no
// entry for t exists yet.
func (s *Service) dispatch(ctx *Context, t domain.TypeDescriptor) (*entry, error) {
	if t == nil {
		return localEntry(schema.EmptySchema()), nil
	}

	t, skip := s.override(t)
	if skip {
		return localEntry(schema.EmptySchema()), nil
	}

	id := t.ID()
	if e, ok := ctx.lookup(id); ok {
		return e, nil
	}

	if !ctx.enter(id) {
		s.debug.Printf("resolver: %s refers to itself through a container, using empty schema", t)
		return localEntry(schema.EmptySchema()), nil
	}
	defer ctx.leave(id)

	class := s.types.Classify(t)
	r := s.route(t, class)

	frame := ctx.frame()
	var (
		e   *entry
		err error
	)
	switch r.mapper {
	case scalarMapper:
		e = s.mapScalar(t, class)
	case containerMapper:
		e, err = s.mapContainer(frame, t, class)
	case enumMapper:
		e, err = s.mapEnum(t)
	default:
		e, err = s.mapObject(frame, t, class)
	}
	if err != nil {
		return nil, err
	}

	ctx.store(id, e)
	return e, nil
}

// override applies configured type replacements. A type can be replaced by
// its qualified name or by its display name.
func (s *Service) override(t domain.TypeDescriptor) (domain.TypeDescriptor, bool) {
	if len(s.overrides) == 0 {
		return t, false
	}

	for _, name := range []string{t.String(), t.Name()} {
		replacement, ok := s.overrides[name]
		if !ok {
			continue
		}
		if replacement == "" {
			s.debug.Printf("resolver: skipping %s", name)
			return t, true
		}
		if target, found := s.types.Lookup(replacement); found {
			return target, false
		}
		s.debug.Printf("resolver: override target %s for %s not found", replacement, name)
		return t, false
	}
	return t, false
}
