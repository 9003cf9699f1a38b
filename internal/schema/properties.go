package schema

// Properties is an insertion-ordered map of property name to schema.
// A nil *Properties behaves as empty.
type Properties struct {
	keys   []string
	values map[string]*SchemaRef
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*SchemaRef)}
}

// Set stores a property. Replacing an existing property keeps its position.
func (p *Properties) Set(name string, ref *SchemaRef) {
	if p.values == nil {
		p.values = make(map[string]*SchemaRef)
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = ref
}

// Get returns a property by name.
func (p *Properties) Get(name string) (*SchemaRef, bool) {
	if p == nil {
		return nil, false
	}
	ref, ok := p.values[name]
	return ref, ok
}

// Has reports whether a property exists.
func (p *Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns a deep copy of p.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	out := &Properties{
		keys:   append([]string(nil), p.keys...),
		values: make(map[string]*SchemaRef, len(p.values)),
	}
	for k, v := range p.values {
		out.values[k] = v.Clone()
	}
	return out
}
