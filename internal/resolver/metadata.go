package resolver

import (
	"strconv"
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

const (
	extensionSince  = "x-since"
	extensionAuthor = "x-author"
)

// applyTypeDoc copies type level documentation onto a component schema.
func applyTypeDoc(s *schema.Schema, doc domain.Doc) {
	if text := doc.Text(); text != "" {
		s.Description = text
	}
	if title, ok := doc.Tag(domain.TagTitle); ok {
		s.Title = title
	}
	s.Deprecated = s.Deprecated || doc.Deprecated()
	if since, ok := doc.Tag(domain.TagSince); ok && since != "" {
		s.SetExtension(extensionSince, since)
	}
	if author, ok := doc.Tag(domain.TagAuthor); ok && author != "" {
		s.SetExtension(extensionAuthor, author)
	}
}

// enrich applies member metadata to an inline property schema. Member
// documentation wins; the declaring type's since, author and deprecation
// apply when the member says nothing.
func (s *Service) enrich(sch *schema.Schema, m domain.Member, typeDoc domain.Doc) {
	attrs := m.Attributes

	if text := m.Doc.Text(); text != "" {
		sch.Description = text
	}

	switch {
	case attrs.Has(domain.AttrDeprecated):
		sch.Deprecated = attrs.Bool(domain.AttrDeprecated)
	case m.Doc.Deprecated():
		sch.Deprecated = true
	case typeDoc.Deprecated():
		sch.Deprecated = true
	}

	for tag, ext := range map[string]string{domain.TagSince: extensionSince, domain.TagAuthor: extensionAuthor} {
		if v, ok := m.Doc.Tag(tag); ok && v != "" {
			sch.SetExtension(ext, v)
		} else if v, ok := typeDoc.Tag(tag); ok && v != "" {
			sch.SetExtension(ext, v)
		}
	}

	if format, ok := attrs.Get(domain.AttrFormat); ok && format != "" {
		sch.Format = format
	}
	if pattern, ok := attrs.Get(domain.AttrPattern); ok && pattern != "" {
		sch.Pattern = pattern
	}
	if values, ok := attrs.Get(domain.AttrEnum); ok && len(sch.Enum) == 0 {
		sch.Enum = strings.Fields(values)
	}

	s.applyBounds(sch, m)

	if v, ok := attrs.Get(domain.AttrDefault); ok {
		sch.Default = typedValue(sch, v)
	}
	if v, ok := attrs.Get(domain.AttrExample); ok {
		sch.Example = typedValue(sch, v)
	}
}

// applyBounds applies numeric and length constraints. Generic min/max
// bound the value of numbers and the length of text.
func (s *Service) applyBounds(sch *schema.Schema, m domain.Member) {
	attrs := m.Attributes
	numeric := sch.Kind == domain.INTEGER || sch.Kind == domain.NUMBER

	setFloat := func(key string, dst **float64) {
		v, ok := attrs.Get(key)
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.debug.Printf("resolver: member %s: invalid %s %q", m.Name, key, v)
			return
		}
		*dst = &f
	}
	setInt := func(key string, dst **int64) {
		v, ok := attrs.Get(key)
		if !ok {
			return
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.debug.Printf("resolver: member %s: invalid %s %q", m.Name, key, v)
			return
		}
		*dst = &n
	}

	switch {
	case numeric:
		setFloat(domain.AttrMin, &sch.Minimum)
		setFloat(domain.AttrMax, &sch.Maximum)
	case sch.Kind == domain.STRING:
		setInt(domain.AttrMin, &sch.MinLength)
		setInt(domain.AttrMax, &sch.MaxLength)
	}

	setFloat(domain.AttrMinimum, &sch.Minimum)
	setFloat(domain.AttrMaximum, &sch.Maximum)
	setInt(domain.AttrMinLength, &sch.MinLength)
	setInt(domain.AttrMaxLength, &sch.MaxLength)
}

// typedValue converts an attribute value to the kind of the schema.
func typedValue(sch *schema.Schema, text string) any {
	switch sch.Kind {
	case domain.INTEGER:
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return v
		}
	case domain.NUMBER:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v
		}
	case domain.BOOLEAN:
		if v, err := strconv.ParseBool(text); err == nil {
			return v
		}
	case domain.ARRAY:
		var items []any
		for _, part := range splitList(text) {
			if sch.Items != nil && sch.Items.Value != nil {
				items = append(items, typedValue(sch.Items.Value, part))
				continue
			}
			items = append(items, part)
		}
		return items
	}
	return text
}
