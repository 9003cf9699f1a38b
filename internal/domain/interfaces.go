package domain

// TypeSystem answers questions about a static type graph.
// Implementations must be safe for concurrent reads after construction.
type TypeSystem interface {
	// Lookup finds a type by its qualified name or type expression.
	Lookup(name string) (TypeDescriptor, bool)

	// Classify reports the shape of a type.
	Classify(t TypeDescriptor) Classification

	// Supertypes returns the direct supertypes of t in declaration order,
	// possibly mentioning t's own type parameters. The universal root type
	// is never reported.
	Supertypes(t TypeDescriptor) []TypeDescriptor

	// Members returns the data members and accessor methods declared
	// directly on t, in declaration order.
	Members(t TypeDescriptor) []Member

	// TypeParameters returns the declared type parameter names of t.
	TypeParameters(t TypeDescriptor) []string

	// TypeArguments returns the type arguments of an instantiated type.
	// For arrays it returns the element type.
	TypeArguments(t TypeDescriptor) []TypeDescriptor

	// ResolveTypeArgument returns the argument bound to param on t.
	ResolveTypeArgument(t TypeDescriptor, param string) (TypeDescriptor, bool)

	// Substitute replaces type parameters in t according to bindings.
	Substitute(t TypeDescriptor, bindings map[string]TypeDescriptor) TypeDescriptor

	// EnumConstants returns the constants of an enum type in declaration order.
	EnumConstants(t TypeDescriptor) []string

	// SameType reports whether a and b denote the same type.
	SameType(a, b TypeDescriptor) bool

	// Doc returns the documentation attached to the type declaration.
	Doc(t TypeDescriptor) Doc
}

// Debugger is the logging hook accepted by services.
type Debugger interface {
	Printf(format string, v ...interface{})
}
