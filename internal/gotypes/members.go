package gotypes

import (
	"go/types"
	"reflect"
	"sort"

	"github.com/griffnb/core-schema/internal/domain"
)

func underlyingStruct(t domain.TypeDescriptor) (*types.Struct, bool) {
	typ, ok := typeOf(t)
	if !ok {
		return nil, false
	}
	st, ok := typ.Underlying().(*types.Struct)
	return st, ok
}

func underlyingInterface(t domain.TypeDescriptor) (*types.Interface, bool) {
	typ, ok := typeOf(t)
	if !ok {
		return nil, false
	}
	iface, ok := typ.Underlying().(*types.Interface)
	return iface, ok
}

// Members returns the exported fields of a struct, or the exported methods
// of an interface as accessors. Embedded fields without a json name are
// reported by Supertypes instead.
func (u *Universe) Members(t domain.TypeDescriptor) []domain.Member {
	if st, ok := underlyingStruct(t); ok {
		return u.fields(st)
	}
	if iface, ok := underlyingInterface(t); ok {
		return u.methods(iface)
	}
	return nil
}

func (u *Universe) fields(st *types.Struct) []domain.Member {
	out := make([]domain.Member, 0, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		attrs, named := tagAttributes(reflect.StructTag(st.Tag(i)))
		if !f.Exported() || (f.Embedded() && !named) {
			continue
		}
		out = append(out, domain.Member{
			Name:       f.Name(),
			Type:       ref(f.Type()),
			Attributes: attrs,
			Doc:        u.docs[f.Origin()],
		})
	}
	return out
}

// methods lists explicit methods in source order; go/types orders them by
// name.
func (u *Universe) methods(iface *types.Interface) []domain.Member {
	funcs := make([]*types.Func, iface.NumExplicitMethods())
	for i := range funcs {
		funcs[i] = iface.ExplicitMethod(i)
	}
	sort.SliceStable(funcs, func(i, j int) bool { return funcs[i].Pos() < funcs[j].Pos() })

	out := make([]domain.Member, 0, len(funcs))
	for _, m := range funcs {
		sig, ok := m.Type().(*types.Signature)
		if !m.Exported() || !ok || sig.Results().Len() == 0 {
			continue
		}
		out = append(out, domain.Member{
			Name:     m.Name(),
			Type:     ref(sig.Results().At(0).Type()),
			Doc:      u.docs[m.Origin()],
			Accessor: true,
			Params:   sig.Params().Len(),
		})
	}
	return out
}

// Supertypes returns the embedded structs of a struct, pointers removed,
// and the embedded interfaces of an interface.
func (u *Universe) Supertypes(t domain.TypeDescriptor) []domain.TypeDescriptor {
	var out []domain.TypeDescriptor

	if st, ok := underlyingStruct(t); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if !f.Embedded() {
				continue
			}
			attrs, named := tagAttributes(reflect.StructTag(st.Tag(i)))
			if named || attrs.Bool(domain.AttrExclude) {
				continue
			}
			typ := types.Unalias(f.Type())
			if ptr, ok := typ.(*types.Pointer); ok {
				typ = ptr.Elem()
			}
			out = append(out, ref(typ))
		}
		return out
	}

	if iface, ok := underlyingInterface(t); ok {
		for i := 0; i < iface.NumEmbeddeds(); i++ {
			out = append(out, ref(iface.EmbeddedType(i)))
		}
	}
	return out
}

// Doc returns the parsed comment of a named type's declaration.
func (u *Universe) Doc(t domain.TypeDescriptor) domain.Doc {
	typ, _ := typeOf(t)
	if named, ok := typ.(*types.Named); ok {
		return u.docs[named.Obj()]
	}
	return domain.Doc{}
}
