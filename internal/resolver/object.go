package resolver

import (
	"strings"

	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

// mapObject renders an object or interface as a named component with one
// property per data member, walking the supertype chain. The component is
// entered into the context before its members are resolved, so recursive
// references terminate.
func (s *Service) mapObject(ctx *Context, t domain.TypeDescriptor, c domain.Classification) (*entry, error) {
	if c.Kind != domain.KindObject && c.Kind != domain.KindInterface {
		s.debug.Printf("resolver: unsupported %s type %s, using empty schema", c.Kind, t)
		return localEntry(schema.EmptySchema()), nil
	}

	key, err := s.componentKey(t)
	if err != nil {
		return nil, err
	}

	obj := schema.ObjectSchema()
	e := &entry{schema: obj, key: key, owner: t.ID(), referenceable: true}
	ctx.store(t.ID(), e)

	typeDoc := s.types.Doc(t)
	applyTypeDoc(obj, typeDoc)

	accessors := s.accessorMode && c.Kind == domain.KindInterface
	err = s.walkHierarchy(t, func(level domain.TypeDescriptor, bindings map[string]domain.TypeDescriptor) error {
		for _, m := range s.types.Members(level) {
			name, ok := s.propertyName(m, accessors)
			if !ok || obj.Properties.Has(name) {
				continue
			}

			prop, err := s.resolveMember(ctx, s.types.Substitute(m.Type, bindings), m, typeDoc)
			if err != nil {
				return err
			}
			obj.Properties.Set(name, prop)

			if s.isRequired(m) {
				obj.AddRequired(name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// walkHierarchy visits t and then its supertypes depth first in declaration
// order. Each level is visited once with the bindings of its own type
// parameters, already substituted through the levels below it.
func (s *Service) walkHierarchy(t domain.TypeDescriptor, visit func(domain.TypeDescriptor, map[string]domain.TypeDescriptor) error) error {
	visited := make(map[string]struct{})

	var walk func(level domain.TypeDescriptor) error
	walk = func(level domain.TypeDescriptor) error {
		if _, ok := visited[level.ID()]; ok {
			return nil
		}
		visited[level.ID()] = struct{}{}

		bindings := s.bindings(level)
		if err := visit(level, bindings); err != nil {
			return err
		}

		for _, super := range s.types.Supertypes(level) {
			if err := walk(s.types.Substitute(super, bindings)); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(t)
}

func (s *Service) bindings(t domain.TypeDescriptor) map[string]domain.TypeDescriptor {
	params := s.types.TypeParameters(t)
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]domain.TypeDescriptor, len(params))
	for _, p := range params {
		if arg, ok := s.types.ResolveTypeArgument(t, p); ok {
			out[p] = arg
		}
	}
	return out
}

// propertyName reports the serialized name of a member, or false when the
// member does not become a property.
func (s *Service) propertyName(m domain.Member, accessors bool) (string, bool) {
	if m.Static || m.Attributes.Bool(domain.AttrExclude) {
		return "", false
	}

	if name, ok := m.Attributes.Get(domain.AttrName); ok && name != "" {
		if m.Accessor && (!accessors || m.Params != 0) {
			return "", false
		}
		return name, true
	}

	if !m.Accessor {
		return ApplyNamingStrategy(m.Name, s.namingStrategy), true
	}

	if !accessors || m.Params != 0 {
		return "", false
	}
	prop, ok := accessorProperty(m.Name)
	if !ok {
		return "", false
	}
	if s.namingStrategy != CamelCase {
		prop = ApplyNamingStrategy(prop, s.namingStrategy)
	}
	return prop, true
}

// resolveMember resolves the schema a member contributes. Named components
// are referenced; everything else is inlined and enriched with the member's
// metadata.
func (s *Service) resolveMember(ctx *Context, t domain.TypeDescriptor, m domain.Member, typeDoc domain.Doc) (*schema.SchemaRef, error) {
	if custom, ok := m.Attributes.Get(domain.AttrSchemaType); ok {
		sch, err := schema.BuildCustomSchema(splitList(custom))
		if err != nil {
			s.debug.Printf("resolver: member %s: %s", m.Name, err)
		} else if sch != nil {
			s.enrich(sch, m, typeDoc)
			return schema.Inline(sch), nil
		}
	}

	e, err := s.dispatch(ctx, t)
	if err != nil {
		return nil, err
	}
	if e.referenceable {
		return component.RefSchema(e.key), nil
	}

	sch := e.schema.Clone()
	s.enrich(sch, m, typeDoc)
	return schema.Inline(sch), nil
}

func (s *Service) isRequired(m domain.Member) bool {
	if m.Attributes.Bool(domain.AttrOptional) {
		return false
	}
	if m.Attributes.Bool(domain.AttrRequired) {
		return true
	}
	return s.requiredByDefault
}

func splitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
