package resolver

import (
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

// mapEnum renders an enumeration as a closed string schema.
func (s *Service) mapEnum(t domain.TypeDescriptor) (*entry, error) {
	key, err := s.componentKey(t)
	if err != nil {
		return nil, err
	}

	doc := s.types.Doc(t)
	enum := &schema.Schema{
		Kind: domain.STRING,
		Enum: append([]string(nil), s.types.EnumConstants(t)...),
	}
	applyTypeDoc(enum, doc)

	return &entry{schema: enum, key: key, owner: t.ID(), referenceable: true}, nil
}

// componentKey returns the key of a named component: the "@name" doc
// override when present, else the canonical key of the type.
func (s *Service) componentKey(t domain.TypeDescriptor) (string, error) {
	if name, ok := s.types.Doc(t).Tag(domain.TagName); ok && name != "" {
		if !component.ValidKey(name) {
			return "", &component.KeyViolationError{Type: t.String(), Key: name}
		}
		return name, nil
	}
	return component.CanonicalKey(t)
}
