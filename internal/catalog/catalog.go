// Package catalog is an in-memory domain.TypeSystem. Types are declared
// programmatically or loaded from YAML, and member types are written as
// type expressions like "list<shop.Article>" or "shop.Page<T>".
package catalog

import (
	"fmt"
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
)

var primitives = map[string]domain.PrimitiveKind{
	"boolean": domain.PrimitiveBoolean,
	"bool":    domain.PrimitiveBoolean,
	"byte":    domain.PrimitiveByte,
	"int8":    domain.PrimitiveByte,
	"char":    domain.PrimitiveChar,
	"short":   domain.PrimitiveShort,
	"int16":   domain.PrimitiveShort,
	"int":     domain.PrimitiveInt,
	"int32":   domain.PrimitiveInt,
	"integer": domain.PrimitiveInt,
	"long":    domain.PrimitiveLong,
	"int64":   domain.PrimitiveLong,
	"float":   domain.PrimitiveFloat,
	"float32": domain.PrimitiveFloat,
	"double":  domain.PrimitiveDouble,
	"float64": domain.PrimitiveDouble,
}

var containers = map[string]domain.ContainerKind{
	"optional": domain.ContainerOptional,
	"list":     domain.ContainerList,
	"set":      domain.ContainerSet,
	"map":      domain.ContainerMap,
}

// Decl declares a named type.
type Decl struct {
	// Name is the qualified name, e.g. "shop.Order".
	Name string
	// Kind is domain.KindObject, domain.KindInterface or domain.KindEnum.
	Kind    domain.Kind
	Params  []string
	Extends []string
	Fields  []Field
	// Values are the constants of an enum.
	Values []string
	Doc    domain.Doc

	super []*typeExpr
}

// Field declares a data member or, with Accessor set, a method.
type Field struct {
	Name       string
	Type       string
	Attributes domain.Attributes
	Doc        domain.Doc
	Static     bool
	Accessor   bool
	Params     int

	expr *typeExpr
}

// Catalog is a TypeSystem over declared types. It is safe for concurrent
// reads once every declaration has been added.
type Catalog struct {
	decls map[string]*Decl
	order []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{decls: make(map[string]*Decl)}
}

// Add declares a type. Type expressions are parsed immediately; names are
// resolved when queried, so declarations may refer to types added later.
func (c *Catalog) Add(d Decl) error {
	if d.Name == "" {
		return fmt.Errorf("catalog: declaration without a name")
	}
	if _, ok := c.decls[d.Name]; ok {
		return fmt.Errorf("catalog: type %s declared twice", d.Name)
	}
	switch d.Kind {
	case domain.KindObject, domain.KindInterface, domain.KindEnum:
	default:
		return fmt.Errorf("catalog: type %s has unsupported kind %s", d.Name, d.Kind)
	}

	decl := d
	decl.super = make([]*typeExpr, 0, len(d.Extends))
	for _, ext := range d.Extends {
		expr, err := parseExpr(ext)
		if err != nil {
			return fmt.Errorf("catalog: type %s: %w", d.Name, err)
		}
		decl.super = append(decl.super, expr)
	}

	decl.Fields = make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		expr, err := parseExpr(f.Type)
		if err != nil {
			return fmt.Errorf("catalog: %s.%s: %w", d.Name, f.Name, err)
		}
		f.expr = expr
		decl.Fields[i] = f
	}

	c.decls[d.Name] = &decl
	c.order = append(c.order, d.Name)
	return nil
}

// MustAdd declares a type and panics on error.
func (c *Catalog) MustAdd(decls ...Decl) *Catalog {
	for _, d := range decls {
		if err := c.Add(d); err != nil {
			panic(err)
		}
	}
	return c
}

// Names returns the declared type names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Lookup resolves a type expression against the catalog. Unqualified names
// are not guessed: "Order" only finds a type declared as "Order".
func (c *Catalog) Lookup(name string) (domain.TypeDescriptor, bool) {
	expr, err := parseExpr(name)
	if err != nil {
		return nil, false
	}
	ref := c.resolve(expr, nil)
	if !c.known(ref) {
		return nil, false
	}
	return ref, true
}

func (c *Catalog) known(r *typeRef) bool {
	switch {
	case r.array:
		return c.known(r.args[0])
	case r.param:
		return false
	}
	if _, ok := c.decls[r.name]; ok {
		return true
	}
	if _, ok := primitives[r.name]; ok {
		return true
	}
	if _, ok := containers[r.name]; ok {
		for _, arg := range r.args {
			if !c.known(arg) {
				return false
			}
		}
		return true
	}
	return domain.IsWellKnownType(r.name)
}

// resolve turns an expression written inside scope into a reference with
// qualified names. Names of scope's type parameters become parameters.
func (c *Catalog) resolve(expr *typeExpr, scope *Decl) *typeRef {
	ref := &typeRef{name: c.qualify(expr.Name, scope)}
	if scope != nil && len(expr.Args) == 0 {
		for _, p := range scope.Params {
			if p == expr.Name {
				ref = &typeRef{name: p, param: true}
				break
			}
		}
	}
	for _, arg := range expr.Args {
		ref.args = append(ref.args, c.resolve(arg, scope))
	}
	for range expr.Dims {
		ref = &typeRef{array: true, args: []*typeRef{ref}}
	}
	return ref
}

// qualify finds a declared type by name, trying the namespace of scope
// for unqualified names.
func (c *Catalog) qualify(name string, scope *Decl) string {
	if _, ok := c.decls[name]; ok {
		return name
	}
	if scope != nil {
		if i := strings.LastIndex(scope.Name, "."); i >= 0 {
			if candidate := scope.Name[:i+1] + name; c.decls[candidate] != nil {
				return candidate
			}
		}
	}
	return name
}

func (c *Catalog) decl(t domain.TypeDescriptor) *Decl {
	r, ok := t.(*typeRef)
	if !ok || r.array || r.param {
		return nil
	}
	return c.decls[r.name]
}

// Classify reports the shape of a type.
func (c *Catalog) Classify(t domain.TypeDescriptor) domain.Classification {
	r, ok := t.(*typeRef)
	if !ok {
		return domain.Classification{Kind: domain.KindUnknown}
	}
	switch {
	case r.array:
		return domain.Classification{Kind: domain.KindArray}
	case r.param:
		return domain.Classification{Kind: domain.KindTypeParameter}
	}
	if d, ok := c.decls[r.name]; ok {
		return domain.Classification{Kind: d.Kind}
	}
	if p, ok := primitives[r.name]; ok {
		return domain.Classification{Kind: domain.KindPrimitive, Primitive: p}
	}
	if k, ok := containers[r.name]; ok {
		return domain.Classification{Kind: domain.KindContainer, Container: k}
	}
	return domain.Classification{Kind: domain.KindUnknown}
}

// Supertypes returns the declared supertypes of t.
func (c *Catalog) Supertypes(t domain.TypeDescriptor) []domain.TypeDescriptor {
	d := c.decl(t)
	if d == nil {
		return nil
	}
	out := make([]domain.TypeDescriptor, 0, len(d.super))
	for _, expr := range d.super {
		out = append(out, c.resolve(expr, d))
	}
	return out
}

// Members returns the fields declared on t.
func (c *Catalog) Members(t domain.TypeDescriptor) []domain.Member {
	d := c.decl(t)
	if d == nil {
		return nil
	}
	out := make([]domain.Member, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, domain.Member{
			Name:       f.Name,
			Type:       c.resolve(f.expr, d),
			Attributes: f.Attributes,
			Doc:        f.Doc,
			Static:     f.Static,
			Accessor:   f.Accessor,
			Params:     f.Params,
		})
	}
	return out
}

// TypeParameters returns the declared type parameters of t.
func (c *Catalog) TypeParameters(t domain.TypeDescriptor) []string {
	if d := c.decl(t); d != nil {
		return d.Params
	}
	return nil
}

// TypeArguments returns the arguments of t, or the element of an array.
func (c *Catalog) TypeArguments(t domain.TypeDescriptor) []domain.TypeDescriptor {
	r, ok := t.(*typeRef)
	if !ok {
		return nil
	}
	out := make([]domain.TypeDescriptor, 0, len(r.args))
	for _, arg := range r.args {
		out = append(out, arg)
	}
	return out
}

// ResolveTypeArgument returns the argument bound to param on t.
func (c *Catalog) ResolveTypeArgument(t domain.TypeDescriptor, param string) (domain.TypeDescriptor, bool) {
	d := c.decl(t)
	if d == nil {
		return nil, false
	}
	r := t.(*typeRef)
	for i, p := range d.Params {
		if p == param && i < len(r.args) {
			return r.args[i], true
		}
	}
	return nil, false
}

// Substitute replaces type parameters in t.
func (c *Catalog) Substitute(t domain.TypeDescriptor, bindings map[string]domain.TypeDescriptor) domain.TypeDescriptor {
	r, ok := t.(*typeRef)
	if !ok || len(bindings) == 0 {
		return t
	}
	return r.substitute(bindings)
}

// EnumConstants returns the values of an enum.
func (c *Catalog) EnumConstants(t domain.TypeDescriptor) []string {
	if d := c.decl(t); d != nil && d.Kind == domain.KindEnum {
		return d.Values
	}
	return nil
}

// SameType reports whether a and b denote the same type.
func (c *Catalog) SameType(a, b domain.TypeDescriptor) bool {
	return a != nil && b != nil && a.ID() == b.ID()
}

// Doc returns the documentation of t's declaration.
func (c *Catalog) Doc(t domain.TypeDescriptor) domain.Doc {
	if d := c.decl(t); d != nil {
		return d.Doc
	}
	return domain.Doc{}
}
