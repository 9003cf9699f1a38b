package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveScalar(t *testing.T) {
	tests := []struct {
		name string
		kind PrimitiveKind
		want Scalar
	}{
		{"boolean", PrimitiveBoolean, Scalar{Type: BOOLEAN}},
		{"8-bit", PrimitiveByte, Scalar{Type: STRING, Format: "byte"}},
		{"char", PrimitiveChar, Scalar{Type: STRING}},
		{"16-bit", PrimitiveShort, Scalar{Type: INTEGER, Format: "int32"}},
		{"32-bit", PrimitiveInt, Scalar{Type: INTEGER, Format: "int32"}},
		{"64-bit", PrimitiveLong, Scalar{Type: INTEGER, Format: "int64"}},
		{"float", PrimitiveFloat, Scalar{Type: NUMBER, Format: "float"}},
		{"double", PrimitiveDouble, Scalar{Type: NUMBER, Format: "double"}},
		{"string", PrimitiveString, Scalar{Type: STRING}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PrimitiveScalar(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("none", func(t *testing.T) {
		_, ok := PrimitiveScalar(PrimitiveNone)
		assert.False(t, ok)
	})
}

func TestWellKnownScalar(t *testing.T) {
	tests := []struct {
		name string
		want Scalar
	}{
		{"decimal", Scalar{Type: NUMBER, Format: "double"}},
		{"date", Scalar{Type: STRING, Format: "date"}},
		{"dateTime", Scalar{Type: STRING, Format: "date-time"}},
		{"zonedDateTime", Scalar{Type: STRING, Format: "date-time"}},
		{"offsetDateTime", Scalar{Type: STRING, Format: "date-time"}},
		{"time", Scalar{Type: STRING, Format: "time"}},
		{"time.Time", Scalar{Type: STRING, Format: "date-time"}},
		{"github.com/google/uuid.UUID", Scalar{Type: STRING, Format: "uuid"}},
		{"encoding/json.RawMessage", Scalar{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WellKnownScalar(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, IsWellKnownType("shop.Order"))
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, Scalar{Type: STRING, Format: "uuid"}, ParseScalar("string, uuid"))
	assert.Equal(t, Scalar{Type: INTEGER}, ParseScalar("integer"))
}

func TestParseDoc(t *testing.T) {
	t.Run("summary and description", func(t *testing.T) {
		doc := ParseDoc("Order is a purchase.\n\nIt holds articles\nand a total.")

		assert.Equal(t, "Order is a purchase.", doc.Summary)
		assert.Equal(t, "It holds articles and a total.", doc.Description)
		assert.Equal(t, "Order is a purchase.\n\nIt holds articles and a total.", doc.Text())
	})

	t.Run("tags", func(t *testing.T) {
		doc := ParseDoc("// Account.\n// @since 1.2\n// @author billing\n// @param id the key\n// @deprecated")

		assert.Equal(t, "Account.", doc.Summary)
		since, ok := doc.Tag(TagSince)
		require.True(t, ok)
		assert.Equal(t, "1.2", since)
		assert.Equal(t, "billing", doc.Tags[TagAuthor])
		assert.Equal(t, "the key", doc.Params["id"])
		assert.True(t, doc.Deprecated())
	})

	t.Run("go deprecated paragraph", func(t *testing.T) {
		doc := ParseDoc("Legacy model.\n\nDeprecated: use Account instead.")

		assert.True(t, doc.Deprecated())
		assert.Equal(t, "use Account instead.", doc.Tags[TagDeprecated])
		assert.Empty(t, doc.Description)
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, ParseDoc("").IsZero())
	})
}

func TestAttributes(t *testing.T) {
	var attrs Attributes
	attrs.Set(AttrRequired, "")
	attrs.Set(AttrOptional, "false")
	attrs.Set(AttrName, "id")

	assert.True(t, attrs.Bool(AttrRequired))
	assert.False(t, attrs.Bool(AttrOptional))
	assert.False(t, attrs.Bool(AttrExclude))
	assert.True(t, attrs.Has(AttrName))

	v, ok := attrs.Get(AttrName)
	require.True(t, ok)
	assert.Equal(t, "id", v)
}

func TestClassificationReferenceable(t *testing.T) {
	assert.True(t, Classification{Kind: KindObject}.IsReferenceable())
	assert.True(t, Classification{Kind: KindEnum}.IsReferenceable())
	assert.False(t, Classification{Kind: KindPrimitive, Primitive: PrimitiveLong}.IsReferenceable())
	assert.False(t, Classification{Kind: KindContainer, Container: ContainerList}.IsReferenceable())
	assert.Equal(t, "container", KindContainer.String())
}
