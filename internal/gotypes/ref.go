package gotypes

import (
	"fmt"
	"go/types"
	"hash/fnv"
)

// typeRef is the descriptor of a go/types type. Aliases are resolved when
// the reference is built.
type typeRef struct {
	typ types.Type
}

func ref(t types.Type) *typeRef {
	return &typeRef{typ: types.Unalias(t)}
}

// ID is the fully qualified type string, type arguments included.
func (r *typeRef) ID() string {
	return types.TypeString(r.typ, nil)
}

// Name is the import path qualified name without type arguments, e.g.
// "github.com/google/uuid.UUID".
func (r *typeRef) Name() string {
	switch t := r.typ.(type) {
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return obj.Name()
		}
		return obj.Pkg().Path() + "." + obj.Name()
	case *types.Struct:
		return anonymousName(r.ID())
	}
	return r.ID()
}

// String qualifies names by package name, e.g. "shop.Page[shop.Order]".
func (r *typeRef) String() string {
	if _, ok := r.typ.(*types.Struct); ok {
		return anonymousName(r.ID())
	}
	return types.TypeString(r.typ, packageName)
}

func packageName(p *types.Package) string {
	return p.Name()
}

// anonymousName gives an unnamed struct a stable name derived from its
// full definition, field tags included.
func anonymousName(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return fmt.Sprintf("AnonymousStruct%08x", h.Sum32())
}
