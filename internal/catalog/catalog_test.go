package catalog

import (
	"strings"
	"testing"

	"github.com/griffnb/core-schema/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shop() *Catalog {
	return New().MustAdd(
		Decl{
			Name:   "shop.Base",
			Kind:   domain.KindObject,
			Params: []string{"ID"},
			Fields: []Field{{Name: "id", Type: "ID"}},
		},
		Decl{
			Name:    "shop.Page",
			Kind:    domain.KindObject,
			Params:  []string{"T"},
			Extends: []string{"Base<long>"},
			Fields: []Field{
				{Name: "items", Type: "list<T>"},
				{Name: "total", Type: "int"},
			},
		},
		Decl{Name: "shop.Order", Kind: domain.KindObject, Fields: []Field{{Name: "lines", Type: "Line[]"}}},
		Decl{Name: "shop.Line", Kind: domain.KindObject},
		Decl{Name: "shop.Color", Kind: domain.KindEnum, Values: []string{"A", "B", "XYZ"}},
	)
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"shop.Order", "shop.Order"},
		{"list<shop.Order>", "list<shop.Order>"},
		{"map< string , list<int> >", "map<string, list<int>>"},
		{"Page<Wrapper<Order>>", "Page<Wrapper<Order>>"},
		{"int[][]", "int[][]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := parseExpr(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}

	for _, bad := range []string{"", "list<", "a..b", "<int>"} {
		_, err := parseExpr(bad)
		assert.Error(t, err, bad)
	}
}

func TestClassify(t *testing.T) {
	c := shop()

	tests := []struct {
		expr string
		want domain.Classification
	}{
		{"long", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveLong}},
		{"boolean", domain.Classification{Kind: domain.KindPrimitive, Primitive: domain.PrimitiveBoolean}},
		{"int[]", domain.Classification{Kind: domain.KindArray}},
		{"list<shop.Order>", domain.Classification{Kind: domain.KindContainer, Container: domain.ContainerList}},
		{"optional<int>", domain.Classification{Kind: domain.KindContainer, Container: domain.ContainerOptional}},
		{"map<string, int>", domain.Classification{Kind: domain.KindContainer, Container: domain.ContainerMap}},
		{"shop.Order", domain.Classification{Kind: domain.KindObject}},
		{"shop.Color", domain.Classification{Kind: domain.KindEnum}},
		{"decimal", domain.Classification{Kind: domain.KindUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ, ok := c.Lookup(tt.expr)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Classify(typ))
		})
	}

	_, ok := c.Lookup("shop.Missing")
	assert.False(t, ok)
	_, ok = c.Lookup("list<shop.Missing>")
	assert.False(t, ok)
}

func TestGenericsAndSupertypes(t *testing.T) {
	c := shop()
	page, ok := c.Lookup("shop.Page<shop.Order>")
	require.True(t, ok)

	assert.Equal(t, "shop.Page<shop.Order>", page.String())
	assert.Equal(t, "shop.Page", page.Name())
	assert.Equal(t, []string{"T"}, c.TypeParameters(page))

	arg, ok := c.ResolveTypeArgument(page, "T")
	require.True(t, ok)
	assert.Equal(t, "shop.Order", arg.String())

	members := c.Members(page)
	require.Len(t, members, 2)
	assert.Equal(t, "list<?T>", members[0].Type.ID())

	bound := c.Substitute(members[0].Type, map[string]domain.TypeDescriptor{"T": arg})
	assert.Equal(t, "list<shop.Order>", bound.String())

	supers := c.Supertypes(page)
	require.Len(t, supers, 1)
	assert.Equal(t, "shop.Base<long>", supers[0].String())

	idArg, ok := c.ResolveTypeArgument(supers[0], "ID")
	require.True(t, ok)
	assert.Equal(t, "long", idArg.String())
}

func TestMembersResolveNamespace(t *testing.T) {
	c := shop()
	order, _ := c.Lookup("shop.Order")

	members := c.Members(order)
	require.Len(t, members, 1)
	assert.Equal(t, "shop.Line[]", members[0].Type.String())

	args := c.TypeArguments(members[0].Type)
	require.Len(t, args, 1)
	assert.Equal(t, "shop.Line", args[0].String())
	assert.True(t, c.SameType(args[0], mustLookup(t, c, "shop.Line")))
}

func TestEnumConstants(t *testing.T) {
	c := shop()
	assert.Equal(t, []string{"A", "B", "XYZ"}, c.EnumConstants(mustLookup(t, c, "shop.Color")))
	assert.Nil(t, c.EnumConstants(mustLookup(t, c, "shop.Order")))
}

func TestAddErrors(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(Decl{Name: "A", Kind: domain.KindObject}))

	assert.Error(t, c.Add(Decl{Name: "A", Kind: domain.KindObject}))
	assert.Error(t, c.Add(Decl{Name: "", Kind: domain.KindObject}))
	assert.Error(t, c.Add(Decl{Name: "B"}))
	assert.Error(t, c.Add(Decl{Name: "C", Kind: domain.KindObject, Fields: []Field{{Name: "x", Type: "list<"}}}))
	assert.Equal(t, []string{"A"}, c.Names())
}

func TestLoad(t *testing.T) {
	src := `
types:
  - name: shop.Order
    kind: object
    doc: |
      A purchase.
      @since 2.1
    fields:
      - name: articles
        type: list<shop.Article>
        doc: Ordered articles.
        attributes:
          required: "true"
      - name: getTotal
        type: double
        method: true
  - name: shop.Article
    fields:
      - name: sku
        type: string
  - name: shop.Color
    kind: enum
    values: [RED, GREEN]
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	order := mustLookup(t, c, "shop.Order")
	assert.Equal(t, "A purchase.", c.Doc(order).Summary)
	assert.Equal(t, "2.1", c.Doc(order).Tags[domain.TagSince])

	members := c.Members(order)
	require.Len(t, members, 2)
	assert.True(t, members[0].Attributes.Bool(domain.AttrRequired))
	assert.Equal(t, "Ordered articles.", members[0].Doc.Summary)
	assert.True(t, members[1].Accessor)

	assert.Equal(t, domain.KindObject, c.Classify(mustLookup(t, c, "shop.Article")).Kind)
	assert.Equal(t, []string{"RED", "GREEN"}, c.EnumConstants(mustLookup(t, c, "shop.Color")))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("types:\n  - name: A\n    kind: record\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("types:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err)

	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Names())
}

func mustLookup(t *testing.T, c *Catalog, name string) domain.TypeDescriptor {
	t.Helper()
	typ, ok := c.Lookup(name)
	require.True(t, ok, name)
	return typ
}
