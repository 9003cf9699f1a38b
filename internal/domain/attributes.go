package domain

import "strconv"

// Member attribute keys. Type systems translate their own annotation
// syntax (struct tags, catalog entries) into these keys.
const (
	// AttrName overrides the serialized property name.
	AttrName = "name"
	// AttrExclude removes the member from the schema.
	AttrExclude  = "exclude"
	AttrRequired = "required"
	AttrOptional = "optional"
	// AttrMin and AttrMax are generic bounds: numeric bounds for numbers,
	// length bounds for text.
	AttrMin       = "min"
	AttrMax       = "max"
	AttrMinimum   = "minimum"
	AttrMaximum   = "maximum"
	AttrMinLength = "minLength"
	AttrMaxLength = "maxLength"
	AttrPattern   = "pattern"
	AttrDefault   = "default"
	AttrExample   = "example"
	AttrFormat    = "format"
	// AttrSchemaType replaces the member schema, e.g. "array,integer".
	AttrSchemaType = "schemaType"
	// AttrEnum is a space separated closed set of values.
	AttrEnum       = "enum"
	AttrDeprecated = "deprecated"
)

// Attributes are annotations attached to a member.
type Attributes map[string]string

// Get returns the value of an attribute.
func (a Attributes) Get(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Has reports whether an attribute is present.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Bool reports whether an attribute is present and not explicitly false.
func (a Attributes) Bool(key string) bool {
	v, ok := a[key]
	if !ok {
		return false
	}
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Set stores an attribute, allocating the map when needed.
func (a *Attributes) Set(key, value string) {
	if *a == nil {
		*a = make(Attributes)
	}
	(*a)[key] = value
}
