// Package gotypes exposes type-checked Go packages as a domain.TypeSystem.
// Named structs become objects, named interfaces become interfaces whose
// methods are accessors, and string types with declared constants become
// enums. Documentation comes from the syntax trees.
package gotypes

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
	"golang.org/x/tools/go/packages"
)

// Package is one type-checked package. Syntax and Info are optional;
// without them the package contributes types but no documentation.
type Package struct {
	Types  *types.Package
	Syntax []*ast.File
	Info   *types.Info
}

// Universe is a TypeSystem over a set of packages and everything they
// import. It is read-only after construction.
type Universe struct {
	roots  []*types.Package
	byPath map[string]*types.Package
	byName map[string][]*types.Package
	docs   map[types.Object]domain.Doc
	enums  map[*types.TypeName][]string
}

var _ domain.TypeSystem = (*Universe)(nil)

// New indexes pkgs. The given packages are the roots; their imports are
// searchable by Lookup but never reported by Roots.
func New(pkgs ...*Package) *Universe {
	u := &Universe{
		byPath: make(map[string]*types.Package),
		byName: make(map[string][]*types.Package),
		docs:   make(map[types.Object]domain.Doc),
		enums:  make(map[*types.TypeName][]string),
	}

	for _, pkg := range pkgs {
		if pkg == nil || pkg.Types == nil {
			continue
		}
		u.roots = append(u.roots, pkg.Types)
		u.addPackage(pkg.Types)
		if pkg.Info != nil {
			u.collectDocs(pkg.Syntax, pkg.Info)
		}
	}

	for _, p := range u.byPath {
		u.collectEnums(p)
	}
	return u
}

// FromPackages indexes packages loaded with go/packages. Imported packages
// listed in dependencies contribute their documentation when they were
// loaded with syntax.
func FromPackages(roots []*packages.Package, dependencies ...string) *Universe {
	pkgs := make([]*Package, 0, len(roots))
	for _, p := range roots {
		pkgs = append(pkgs, &Package{Types: p.Types, Syntax: p.Syntax, Info: p.TypesInfo})
	}
	u := New(pkgs...)
	if len(dependencies) == 0 {
		return u
	}

	wanted := make(map[string]struct{}, len(dependencies))
	for _, path := range dependencies {
		wanted[path] = struct{}{}
	}
	packages.Visit(roots, func(p *packages.Package) bool {
		if _, ok := wanted[p.PkgPath]; ok && p.TypesInfo != nil && !isRoot(roots, p) {
			delete(wanted, p.PkgPath)
			u.collectDocs(p.Syntax, p.TypesInfo)
		}
		return true
	}, nil)
	return u
}

func isRoot(roots []*packages.Package, p *packages.Package) bool {
	for _, r := range roots {
		if r == p {
			return true
		}
	}
	return false
}

func (u *Universe) addPackage(p *types.Package) {
	if _, ok := u.byPath[p.Path()]; ok {
		return
	}
	u.byPath[p.Path()] = p
	u.byName[p.Name()] = append(u.byName[p.Name()], p)
	for _, imp := range p.Imports() {
		u.addPackage(imp)
	}
}

// collectDocs records the comments of type declarations, struct fields and
// interface methods.
func (u *Universe) collectDocs(files []*ast.File, info *types.Info) {
	for _, file := range files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch x := n.(type) {
			case *ast.GenDecl:
				if x.Tok != token.TYPE {
					return true
				}
				for _, spec := range x.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					group := ts.Doc
					if group == nil && len(x.Specs) == 1 {
						group = x.Doc
					}
					u.setDoc(info.Defs[ts.Name], group)
				}
			case *ast.Field:
				for _, name := range x.Names {
					u.setDoc(info.Defs[name], x.Doc, x.Comment)
				}
				if len(x.Names) == 0 {
					if id := embeddedIdent(x.Type); id != nil {
						u.setDoc(info.Defs[id], x.Doc, x.Comment)
					}
				}
			}
			return true
		})
	}
}

// embeddedIdent returns the identifier an embedded field is named after.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch x := expr.(type) {
	case *ast.Ident:
		return x
	case *ast.StarExpr:
		return embeddedIdent(x.X)
	case *ast.SelectorExpr:
		return x.Sel
	case *ast.IndexExpr:
		return embeddedIdent(x.X)
	case *ast.IndexListExpr:
		return embeddedIdent(x.X)
	}
	return nil
}

func (u *Universe) setDoc(obj types.Object, groups ...*ast.CommentGroup) {
	if obj == nil {
		return
	}
	var text []string
	for _, g := range groups {
		if g != nil {
			text = append(text, g.Text())
		}
	}
	if doc := domain.ParseDoc(strings.Join(text, "\n")); !doc.IsZero() {
		u.docs[obj] = doc
	}
}

// collectEnums finds the constants declared for each named string type of
// p, in source order.
func (u *Universe) collectEnums(p *types.Package) {
	scope := p.Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok {
			consts = append(consts, c)
		}
	}
	sort.SliceStable(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	for _, c := range consts {
		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Pkg() != p || c.Val().Kind() != constant.String {
			continue
		}
		u.enums[named.Obj()] = append(u.enums[named.Obj()], constant.StringVal(c.Val()))
	}
}

// Lookup finds a type by name: a builtin such as "int64", a package
// qualified name such as "shop.Order" or "github.com/acme/shop.Order", or
// either prefixed with "*" or "[]".
func (u *Universe) Lookup(name string) (domain.TypeDescriptor, bool) {
	name = strings.TrimSpace(name)
	switch {
	case strings.HasPrefix(name, "*"):
		elem, ok := u.lookupType(name[1:])
		if !ok {
			return nil, false
		}
		return ref(types.NewPointer(elem)), true
	case strings.HasPrefix(name, "[]"):
		elem, ok := u.lookupType(name[2:])
		if !ok {
			return nil, false
		}
		return ref(types.NewSlice(elem)), true
	}

	t, ok := u.lookupType(name)
	if !ok {
		return nil, false
	}
	return ref(t), true
}

func (u *Universe) lookupType(name string) (types.Type, bool) {
	if strings.HasPrefix(name, "*") || strings.HasPrefix(name, "[]") {
		d, ok := u.Lookup(name)
		if !ok {
			return nil, false
		}
		return d.(*typeRef).typ, true
	}

	i := strings.LastIndex(name, ".")
	if i < 0 {
		if obj, ok := types.Universe.Lookup(name).(*types.TypeName); ok {
			return obj.Type(), true
		}
		return nil, false
	}

	pkgName, typeName := name[:i], name[i+1:]
	candidates := u.byName[pkgName]
	if p, ok := u.byPath[pkgName]; ok {
		candidates = []*types.Package{p}
	}
	for _, p := range candidates {
		if obj, ok := p.Scope().Lookup(typeName).(*types.TypeName); ok {
			return obj.Type(), true
		}
	}
	return nil, false
}

// Roots returns the exported, non-generic named types declared in the root
// packages that render as objects, interfaces or enums, ordered by
// package path and name.
func (u *Universe) Roots() []domain.TypeDescriptor {
	pkgs := append([]*types.Package(nil), u.roots...)
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Path() < pkgs[j].Path() })

	var out []domain.TypeDescriptor
	for _, p := range pkgs {
		scope := p.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok || named.TypeParams().Len() > 0 {
				continue
			}
			d := ref(named)
			if u.Classify(d).IsReferenceable() {
				out = append(out, d)
			}
		}
	}
	return out
}

// Package returns a loaded package by import path.
func (u *Universe) Package(path string) (*types.Package, bool) {
	p, ok := u.byPath[path]
	return p, ok
}
