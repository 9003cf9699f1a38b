package gotypes

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopSource = `package shop

import "time"

// Status of an order.
type Status string

const (
	StatusOpen Status = "open"
	StatusPaid Status = "paid"
	Limit             = 10
)

type Priority int

const PriorityHigh Priority = 1

// Base carries identity.
type Base struct {
	// ID is the primary key.
	ID int64 ` + "`json:\"id\"`" + `
}

// Order is a purchase.
// @since 2.0
type Order struct {
	Base
	Status   Status            ` + "`json:\"status\" validate:\"required\"`" + `
	Lines    []*Line           ` + "`json:\"lines,omitempty\"`" + `
	Tags     map[string]string ` + "`json:\"tags\"`" + `
	Created  time.Time         ` + "`json:\"created\"`" + `
	Payload  []byte            ` + "`json:\"payload\"`" + `
	Note     *string           ` + "`json:\"note\" example:\"leave at door\"`" + `
	Secret   string            ` + "`json:\"-\"`" + `
	Hidden   string            ` + "`swaggerignore:\"true\"`" + `
	internal string
	Meta     Meta ` + "`json:\"meta\"`" + `
	Priority Priority
	Extra    struct {
		Gift bool ` + "`json:\"gift\"`" + `
	} ` + "`json:\"extra\"`" + `
}

type Meta struct {
	Source string
}

type Line struct {
	SKU   string  ` + "`json:\"sku\" validate:\"min=3,max=12\"`" + `
	Price float64 ` + "`json:\"price\" validate:\"gte=0\"`" + `
}

// Page is one page of results.
type Page[T any] struct {
	Items []T ` + "`json:\"items\"`" + `
	Total int ` + "`json:\"total\"`" + `
}

type OrderPage = Page[Order]

type Named interface {
	GetName() string
	IsActive() bool
	Reset()
}
`

func checkShop(t *testing.T) *Universe {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "shop.go", shopSource, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Types:     make(map[ast.Expr]types.TypeAndValue),
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
		Instances: make(map[*ast.Ident]types.Instance),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/shop", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return New(&Package{Types: pkg, Syntax: []*ast.File{file}, Info: info})
}

func lookup(t *testing.T, u *Universe, name string) domain.TypeDescriptor {
	t.Helper()
	d, ok := u.Lookup(name)
	require.True(t, ok, name)
	return d
}

func TestClassify(t *testing.T) {
	u := checkShop(t)

	tests := []struct {
		name string
		want domain.Classification
	}{
		{"shop.Order", domain.Classification{Kind: domain.KindObject}},
		{"example.com/shop.Order", domain.Classification{Kind: domain.KindObject}},
		{"shop.Status", domain.Classification{Kind: domain.KindEnum}},
		{"shop.Priority", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveLong}},
		{"shop.Named", domain.Classification{Kind: domain.KindInterface}},
		{"*shop.Order", domain.Classification{Kind: domain.KindContainer, Container: domain.ContainerOptional}},
		{"[]shop.Line", domain.Classification{Kind: domain.KindContainer, Container: domain.ContainerList}},
		{"[]byte", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveByte}},
		{"int32", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveInt}},
		{"uint8", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveShort}},
		{"string", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveString}},
		{"error", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveString}},
		{"any", domain.Classification{Kind: domain.KindUnknown}},
		{"time.Time", domain.Classification{Kind: domain.KindObject}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, u.Classify(lookup(t, u, tt.name)))
		})
	}

	_, ok := u.Lookup("shop.Missing")
	assert.False(t, ok)
	_, ok = u.Lookup("nowhere.Order")
	assert.False(t, ok)
}

func TestDescriptorNames(t *testing.T) {
	u := checkShop(t)
	order := lookup(t, u, "shop.Order")

	assert.Equal(t, "example.com/shop.Order", order.ID())
	assert.Equal(t, "example.com/shop.Order", order.Name())
	assert.Equal(t, "shop.Order", order.String())
	assert.Equal(t, "time.Time", lookup(t, u, "time.Time").Name())

	page := lookup(t, u, "shop.OrderPage")
	assert.Equal(t, "shop.Page[shop.Order]", page.String())
	assert.Equal(t, "example.com/shop.Page", page.Name())
}

func TestEnumConstants(t *testing.T) {
	u := checkShop(t)

	assert.Equal(t, []string{"open", "paid"}, u.EnumConstants(lookup(t, u, "shop.Status")))
	assert.Empty(t, u.EnumConstants(lookup(t, u, "shop.Priority")))
}

func TestMembers(t *testing.T) {
	u := checkShop(t)
	order := lookup(t, u, "shop.Order")

	members := u.Members(order)
	names := make([]string, 0, len(members))
	byName := make(map[string]domain.Member)
	for _, m := range members {
		names = append(names, m.Name)
		byName[m.Name] = m
	}

	assert.Equal(t, []string{"Status", "Lines", "Tags", "Created", "Payload", "Note", "Secret", "Hidden", "Meta", "Priority", "Extra"}, names)
	assert.Equal(t, "status", byName["Status"].Attributes[domain.AttrName])
	assert.True(t, byName["Status"].Attributes.Bool(domain.AttrRequired))
	assert.True(t, byName["Lines"].Attributes.Bool(domain.AttrOptional))
	assert.True(t, byName["Secret"].Attributes.Bool(domain.AttrExclude))
	assert.True(t, byName["Hidden"].Attributes.Bool(domain.AttrExclude))
	assert.Equal(t, "leave at door", byName["Note"].Attributes[domain.AttrExample])
	assert.True(t, strings.HasPrefix(byName["Extra"].Type.String(), "AnonymousStruct"))

	supers := u.Supertypes(order)
	require.Len(t, supers, 1)
	assert.Equal(t, "shop.Base", supers[0].String())
	assert.Equal(t, "ID is the primary key.", u.Members(supers[0])[0].Doc.Summary)
}

func TestInterfaceMembers(t *testing.T) {
	u := checkShop(t)

	members := u.Members(lookup(t, u, "shop.Named"))
	require.Len(t, members, 2)
	assert.Equal(t, "GetName", members[0].Name)
	assert.True(t, members[0].Accessor)
	assert.Equal(t, 0, members[0].Params)
	assert.Equal(t, "bool", members[1].Type.String())
}

func TestGenerics(t *testing.T) {
	u := checkShop(t)
	page := lookup(t, u, "shop.OrderPage")

	assert.Equal(t, []string{"T"}, u.TypeParameters(page))

	arg, ok := u.ResolveTypeArgument(page, "T")
	require.True(t, ok)
	assert.True(t, u.SameType(arg, lookup(t, u, "shop.Order")))

	members := u.Members(page)
	require.Len(t, members, 2)
	assert.Equal(t, "[]shop.Order", members[0].Type.String())
	assert.Equal(t, "Page is one page of results.", u.Doc(page).Summary)

	origin := lookup(t, u, "shop.Page")
	raw := u.Members(origin)[0].Type
	bound := u.Substitute(raw, map[string]domain.TypeDescriptor{"T": lookup(t, u, "shop.Line")})
	assert.Equal(t, "[]shop.Line", bound.String())
}

func TestDocs(t *testing.T) {
	u := checkShop(t)
	doc := u.Doc(lookup(t, u, "shop.Order"))

	assert.Equal(t, "Order is a purchase.", doc.Summary)
	since, ok := doc.Tag(domain.TagSince)
	require.True(t, ok)
	assert.Equal(t, "2.0", since)
	assert.True(t, u.Doc(lookup(t, u, "shop.Meta")).IsZero())
}

func TestRoots(t *testing.T) {
	u := checkShop(t)

	var names []string
	for _, r := range u.Roots() {
		names = append(names, r.String())
	}
	assert.Equal(t, []string{"shop.Base", "shop.Line", "shop.Meta", "shop.Named", "shop.Order", "shop.Status"}, names)
}

func TestResolveGoStruct(t *testing.T) {
	// Arrange
	u := checkShop(t)

	// Act
	result, err := resolver.New(u).ResolveType(lookup(t, u, "shop.Order"))

	// Assert
	require.NoError(t, err)
	order := result.Schemas["Order"]
	require.NotNil(t, order)

	keys := order.Properties.Keys()
	assert.Equal(t, []string{"status", "lines", "tags", "created", "payload", "note", "meta", "priority", "extra", "id"}, keys)
	assert.Equal(t, []string{"status"}, order.Required)
	assert.Equal(t, "Order is a purchase.", order.Description)
	assert.Equal(t, "2.0", order.Extensions["x-since"])

	get := func(name string) (string, string, string) {
		prop, _ := order.Properties.Get(name)
		if prop.IsRef() {
			return prop.Ref, "", ""
		}
		return "", prop.Value.Kind, prop.Value.Format
	}

	ref, _, _ := get("status")
	assert.Equal(t, "#/components/schemas/Status", ref)
	_, kind, format := get("created")
	assert.Equal(t, []string{domain.STRING, "date-time"}, []string{kind, format})
	_, kind, format = get("payload")
	assert.Equal(t, []string{domain.STRING, "byte"}, []string{kind, format})
	_, kind, format = get("priority")
	assert.Equal(t, []string{domain.INTEGER, "int64"}, []string{kind, format})

	note, _ := order.Properties.Get("note")
	assert.Equal(t, "leave at door", note.Value.Example)

	lines, _ := order.Properties.Get("lines")
	assert.Equal(t, "#/components/schemas/Line", lines.Value.Items.Ref)
	tags, _ := order.Properties.Get("tags")
	assert.Equal(t, domain.STRING, tags.Value.AdditionalProperties.Value.Kind)
	id, _ := order.Properties.Get("id")
	assert.Equal(t, "ID is the primary key.", id.Value.Description)

	assert.Equal(t, []string{"open", "paid"}, result.Schemas["Status"].Enum)
	assert.Contains(t, result.Schemas, "Meta")
	assert.NotContains(t, result.Schemas, "Base")

	line := result.Schemas["Line"]
	sku, _ := line.Properties.Get("sku")
	assert.Equal(t, int64(3), *sku.Value.MinLength)
	assert.Equal(t, int64(12), *sku.Value.MaxLength)
	price, _ := line.Properties.Get("price")
	assert.Equal(t, 0.0, *price.Value.Minimum)
}
