// Package domain contains the core contract shared across core-schema.
// These types describe the host type system the resolver walks: type
// descriptors, their classification, members, documentation and attributes.
package domain

// Kind is the coarse shape of a type as reported by a TypeSystem.
type Kind int

const (
	// KindUnknown is a shape the type system cannot describe.
	KindUnknown Kind = iota
	// KindPrimitive is a built-in scalar, see PrimitiveKind.
	KindPrimitive
	// KindArray is a host array; its element is the single type argument.
	KindArray
	// KindEnum is a closed set of named constants.
	KindEnum
	// KindObject is a structured type with data members.
	KindObject
	// KindInterface is an abstract type whose properties come from accessors.
	KindInterface
	// KindContainer is an optional, list, set or map wrapper, see ContainerKind.
	KindContainer
	// KindTypeParameter is an unbound generic parameter.
	KindTypeParameter
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindPrimitive:     "primitive",
	KindArray:         "array",
	KindEnum:          "enum",
	KindObject:        "object",
	KindInterface:     "interface",
	KindContainer:     "container",
	KindTypeParameter: "type-parameter",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// PrimitiveKind identifies a built-in scalar.
type PrimitiveKind int

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveBoolean
	// PrimitiveByte is the 8-bit integer, rendered as base64 text.
	PrimitiveByte
	PrimitiveChar
	// PrimitiveShort is the 16-bit integer.
	PrimitiveShort
	// PrimitiveInt is the 32-bit integer.
	PrimitiveInt
	// PrimitiveLong is the 64-bit integer.
	PrimitiveLong
	PrimitiveFloat
	PrimitiveDouble
	// PrimitiveString is text in host languages where text is a primitive.
	PrimitiveString
)

// ContainerKind identifies a wrapper type.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerOptional
	ContainerList
	ContainerSet
	ContainerMap
)

// Classification is the result of TypeSystem.Classify.
type Classification struct {
	Kind      Kind
	Primitive PrimitiveKind
	Container ContainerKind
}

// IsReferenceable reports whether types of this classification become named
// components rather than inline fragments.
func (c Classification) IsReferenceable() bool {
	return c.Kind == KindEnum || c.Kind == KindObject || c.Kind == KindInterface
}

// TypeDescriptor is an opaque handle on a type of the host type system.
type TypeDescriptor interface {
	// ID is the identity of the type. Two descriptors with the same ID are
	// the same type.
	ID() string
	// Name is the qualified name without type arguments, e.g. "time.Time".
	Name() string
	// String is the qualified display name including type arguments,
	// e.g. "shop.Page<shop.Order>".
	String() string
}

// Member is a data member or accessor method of an object or interface.
type Member struct {
	Name       string
	Type       TypeDescriptor
	Attributes Attributes
	Doc        Doc
	Static     bool
	// Accessor marks a method. Params is its argument count.
	Accessor bool
	Params   int
}
