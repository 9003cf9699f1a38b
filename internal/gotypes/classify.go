package gotypes

import (
	"go/types"

	"github.com/griffnb/core-schema/internal/domain"
)

var basicKinds = map[types.BasicKind]domain.PrimitiveKind{
	types.Bool:    domain.PrimitiveBoolean,
	types.Int8:    domain.PrimitiveShort,
	types.Uint8:   domain.PrimitiveShort,
	types.Int16:   domain.PrimitiveShort,
	types.Uint16:  domain.PrimitiveShort,
	types.Int32:   domain.PrimitiveInt,
	types.Uint32:  domain.PrimitiveInt,
	types.Int:     domain.PrimitiveLong,
	types.Uint:    domain.PrimitiveLong,
	types.Int64:   domain.PrimitiveLong,
	types.Uint64:  domain.PrimitiveLong,
	types.Uintptr: domain.PrimitiveLong,
	types.Float32: domain.PrimitiveFloat,
	types.Float64: domain.PrimitiveDouble,
	types.String:  domain.PrimitiveString,
}

func typeOf(t domain.TypeDescriptor) (types.Type, bool) {
	r, ok := t.(*typeRef)
	if !ok || r == nil {
		return nil, false
	}
	return r.typ, true
}

// Classify reports the shape of a type. Pointers are optional values and
// byte slices are binary strings. A named type over a slice, map or array
// takes the shape of its underlying type unless it is a well-known value
// type such as uuid.UUID.
func (u *Universe) Classify(t domain.TypeDescriptor) domain.Classification {
	typ, ok := typeOf(t)
	if !ok {
		return domain.Classification{Kind: domain.KindUnknown}
	}

	if named, ok := typ.(*types.Named); ok {
		if named.Obj().Pkg() == nil && named.Obj().Name() == "error" {
			return primitive(domain.PrimitiveString)
		}
		switch underlying := named.Underlying().(type) {
		case *types.Struct:
			return domain.Classification{Kind: domain.KindObject}
		case *types.Interface:
			if underlying.Empty() {
				return domain.Classification{Kind: domain.KindUnknown}
			}
			return domain.Classification{Kind: domain.KindInterface}
		case *types.Basic:
			if len(u.enums[named.Obj()]) > 0 {
				return domain.Classification{Kind: domain.KindEnum}
			}
		default:
			if domain.IsWellKnownType(t.Name()) {
				return domain.Classification{Kind: domain.KindUnknown}
			}
		}
		return classifyUnnamed(named.Underlying())
	}

	return classifyUnnamed(typ)
}

func classifyUnnamed(typ types.Type) domain.Classification {
	switch x := typ.(type) {
	case *types.Basic:
		if p, ok := basicKinds[x.Kind()]; ok {
			return primitive(p)
		}
	case *types.Pointer:
		return container(domain.ContainerOptional)
	case *types.Slice:
		if isByte(x.Elem()) {
			return primitive(domain.PrimitiveByte)
		}
		return container(domain.ContainerList)
	case *types.Array:
		return domain.Classification{Kind: domain.KindArray}
	case *types.Map:
		return container(domain.ContainerMap)
	case *types.Struct:
		return domain.Classification{Kind: domain.KindObject}
	case *types.TypeParam:
		return domain.Classification{Kind: domain.KindTypeParameter}
	}
	return domain.Classification{Kind: domain.KindUnknown}
}

func primitive(p domain.PrimitiveKind) domain.Classification {
	return domain.Classification{Kind: domain.KindPrimitive, Primitive: p}
}

func container(c domain.ContainerKind) domain.Classification {
	return domain.Classification{Kind: domain.KindContainer, Container: c}
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Uint8
}

// TypeArguments returns the element of pointers, slices and arrays, the
// key and value of maps, and the type arguments of instantiated generics.
func (u *Universe) TypeArguments(t domain.TypeDescriptor) []domain.TypeDescriptor {
	typ, ok := typeOf(t)
	if !ok {
		return nil
	}

	if named, ok := typ.(*types.Named); ok {
		if args := named.TypeArgs(); args.Len() > 0 {
			out := make([]domain.TypeDescriptor, args.Len())
			for i := range out {
				out[i] = ref(args.At(i))
			}
			return out
		}
		typ = named.Underlying()
	}

	switch x := typ.(type) {
	case *types.Pointer:
		return []domain.TypeDescriptor{ref(x.Elem())}
	case *types.Slice:
		return []domain.TypeDescriptor{ref(x.Elem())}
	case *types.Array:
		return []domain.TypeDescriptor{ref(x.Elem())}
	case *types.Map:
		return []domain.TypeDescriptor{ref(x.Key()), ref(x.Elem())}
	}
	return nil
}

// TypeParameters returns the type parameter names of a generic type.
func (u *Universe) TypeParameters(t domain.TypeDescriptor) []string {
	typ, _ := typeOf(t)
	named, ok := typ.(*types.Named)
	if !ok {
		return nil
	}
	params := named.Origin().TypeParams()
	out := make([]string, params.Len())
	for i := range out {
		out[i] = params.At(i).Obj().Name()
	}
	return out
}

// ResolveTypeArgument returns the argument bound to param on an
// instantiated generic type.
func (u *Universe) ResolveTypeArgument(t domain.TypeDescriptor, param string) (domain.TypeDescriptor, bool) {
	typ, _ := typeOf(t)
	named, ok := typ.(*types.Named)
	if !ok {
		return nil, false
	}
	params, args := named.Origin().TypeParams(), named.TypeArgs()
	for i := 0; i < params.Len() && i < args.Len(); i++ {
		if params.At(i).Obj().Name() == param {
			return ref(args.At(i)), true
		}
	}
	return nil, false
}

// Substitute replaces type parameters by name. Members of instantiated
// types are already substituted by the type checker, so this only matters
// for types written against an uninstantiated declaration.
func (u *Universe) Substitute(t domain.TypeDescriptor, bindings map[string]domain.TypeDescriptor) domain.TypeDescriptor {
	typ, ok := typeOf(t)
	if !ok || len(bindings) == 0 {
		return t
	}
	return ref(substitute(typ, bindings))
}

func substitute(t types.Type, bindings map[string]domain.TypeDescriptor) types.Type {
	switch x := types.Unalias(t).(type) {
	case *types.TypeParam:
		if bound, ok := typeOf(bindings[x.Obj().Name()]); ok {
			return bound
		}
	case *types.Pointer:
		return types.NewPointer(substitute(x.Elem(), bindings))
	case *types.Slice:
		return types.NewSlice(substitute(x.Elem(), bindings))
	case *types.Array:
		return types.NewArray(substitute(x.Elem(), bindings), x.Len())
	case *types.Map:
		return types.NewMap(substitute(x.Key(), bindings), substitute(x.Elem(), bindings))
	case *types.Named:
		args := x.TypeArgs()
		if args.Len() == 0 {
			return x
		}
		subs := make([]types.Type, args.Len())
		for i := range subs {
			subs[i] = substitute(args.At(i), bindings)
		}
		if inst, err := types.Instantiate(nil, x.Origin(), subs, false); err == nil {
			return inst
		}
	}
	return t
}

// EnumConstants returns the string constants declared for a named type.
func (u *Universe) EnumConstants(t domain.TypeDescriptor) []string {
	typ, _ := typeOf(t)
	if named, ok := typ.(*types.Named); ok {
		return u.enums[named.Obj()]
	}
	return nil
}

// SameType reports whether a and b are identical Go types.
func (u *Universe) SameType(a, b domain.TypeDescriptor) bool {
	ta, okA := typeOf(a)
	tb, okB := typeOf(b)
	return okA && okB && types.Identical(ta, tb)
}
