package schema

// Merge combines two fragments of the same component into a new schema.
// The first operand wins every scalar conflict: kind, format, default,
// pattern, example and bounds are taken from a when set, else from b.
// Deprecation is the OR of both, enum values and required names are
// unioned with a's order first, properties are merged key by key.
// Neither operand is modified.
func Merge(a, b *Schema) *Schema {
	if a == nil {
		return b.Clone()
	}
	if b == nil {
		return a.Clone()
	}

	out := a.Clone()
	out.Deprecated = a.Deprecated || b.Deprecated
	out.Kind = firstString(a.Kind, b.Kind)
	out.Format = firstString(a.Format, b.Format)
	out.Title = firstString(a.Title, b.Title)
	out.Description = firstString(a.Description, b.Description)
	out.Pattern = firstString(a.Pattern, b.Pattern)
	if out.Default == nil {
		out.Default = b.Default
	}
	if out.Example == nil {
		out.Example = b.Example
	}
	if out.Minimum == nil {
		out.Minimum = cloneFloat(b.Minimum)
	}
	if out.Maximum == nil {
		out.Maximum = cloneFloat(b.Maximum)
	}
	if out.MinLength == nil {
		out.MinLength = cloneInt(b.MinLength)
	}
	if out.MaxLength == nil {
		out.MaxLength = cloneInt(b.MaxLength)
	}

	out.Enum = unionStrings(a.Enum, b.Enum)
	out.Required = unionStrings(a.Required, b.Required)
	out.Properties = mergeProperties(a.Properties, b.Properties)
	out.Items = mergeRef(a.Items, b.Items)
	out.AdditionalProperties = mergeRef(a.AdditionalProperties, b.AdditionalProperties)

	for k, v := range b.Extensions {
		if _, ok := out.Extensions[k]; !ok {
			out.SetExtension(k, v)
		}
	}

	return out
}

func mergeProperties(a, b *Properties) *Properties {
	if a == nil {
		return b.Clone()
	}
	if b == nil {
		return a.Clone()
	}

	out := NewProperties()
	for _, name := range a.keys {
		left := a.values[name]
		if right, ok := b.values[name]; ok {
			out.Set(name, mergeRef(left, right))
			continue
		}
		out.Set(name, left.Clone())
	}
	for _, name := range b.keys {
		if !out.Has(name) {
			out.Set(name, b.values[name].Clone())
		}
	}
	return out
}

// mergeRef merges two use sites. Two references keep a; two inline schemas
// merge recursively; a mixed pair keeps whichever is present, a first.
func mergeRef(a, b *SchemaRef) *SchemaRef {
	switch {
	case a == nil:
		return b.Clone()
	case b == nil:
		return a.Clone()
	case a.IsRef():
		return a.Clone()
	case b.IsRef():
		if a.Value != nil {
			return a.Clone()
		}
		return b.Clone()
	}
	return Inline(Merge(a.Value, b.Value))
}

// Compatible reports whether a and b can be merged without one silently
// discarding structure the other declares: kinds, formats, references and
// enum sets must agree wherever both sides set them.
func Compatible(a, b *Schema) bool {
	if a == nil || b == nil {
		return true
	}
	if a.Kind != "" && b.Kind != "" && a.Kind != b.Kind {
		return false
	}
	if a.Format != "" && b.Format != "" && a.Format != b.Format {
		return false
	}
	if len(a.Enum) > 0 && len(b.Enum) > 0 && !sameSet(a.Enum, b.Enum) {
		return false
	}
	for _, name := range a.Properties.Keys() {
		left, _ := a.Properties.Get(name)
		if right, ok := b.Properties.Get(name); ok && !compatibleRef(left, right) {
			return false
		}
	}
	return compatibleRef(a.Items, b.Items) && compatibleRef(a.AdditionalProperties, b.AdditionalProperties)
}

func compatibleRef(a, b *SchemaRef) bool {
	switch {
	case a == nil || b == nil:
		return true
	case a.IsRef() && b.IsRef():
		return a.Ref == b.Ref
	case a.IsRef() || b.IsRef():
		return false
	}
	return Compatible(a.Value, b.Value)
}

func firstString(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func unionStrings(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return len(unionStrings(a, b)) == len(set)
}
