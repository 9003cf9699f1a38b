package domain

import (
	"strings"
)

const (
	// ARRAY represent a array value.
	ARRAY = "array"
	// OBJECT represent a object value.
	OBJECT = "object"
	// PRIMITIVE represent a primitive value.
	PRIMITIVE = "primitive"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// NUMBER represent a number value.
	NUMBER = "number"
	// STRING represent a string value.
	STRING = "string"
)

// Scalar is the type/format pair a built-in scalar renders as.
// A zero Scalar is the empty-typed schema.
type Scalar struct {
	Type   string
	Format string
}

var primitiveScalars = map[PrimitiveKind]Scalar{
	PrimitiveBoolean: {Type: BOOLEAN},
	PrimitiveByte:    {Type: STRING, Format: "byte"},
	PrimitiveChar:    {Type: STRING},
	PrimitiveShort:   {Type: INTEGER, Format: "int32"},
	PrimitiveInt:     {Type: INTEGER, Format: "int32"},
	PrimitiveLong:    {Type: INTEGER, Format: "int64"},
	PrimitiveFloat:   {Type: NUMBER, Format: "float"},
	PrimitiveDouble:  {Type: NUMBER, Format: "double"},
	PrimitiveString:  {Type: STRING},
}

var wellKnownScalars = map[string]Scalar{
	// catalog value types
	"string":         {Type: STRING},
	"decimal":        {Type: NUMBER, Format: "double"},
	"date":           {Type: STRING, Format: "date"},
	"time":           {Type: STRING, Format: "time"},
	"dateTime":       {Type: STRING, Format: "date-time"},
	"offsetDateTime": {Type: STRING, Format: "date-time"},
	"zonedDateTime":  {Type: STRING, Format: "date-time"},
	"instant":        {Type: STRING, Format: "date-time"},

	// Go value types
	"time.Time":                             {Type: STRING, Format: "date-time"},
	"time.Duration":                         {Type: INTEGER, Format: "int64"},
	"github.com/google/uuid.UUID":           {Type: STRING, Format: "uuid"},
	"github.com/shopspring/decimal.Decimal": {Type: NUMBER, Format: "double"},
	"encoding/json.RawMessage":              {},
}

// PrimitiveScalar returns the scalar a primitive kind renders as.
func PrimitiveScalar(kind PrimitiveKind) (Scalar, bool) {
	s, ok := primitiveScalars[kind]
	return s, ok
}

// WellKnownScalar returns the scalar a well-known value type renders as,
// looked up by qualified name.
func WellKnownScalar(name string) (Scalar, bool) {
	s, ok := wellKnownScalars[name]
	return s, ok
}

// IsWellKnownType reports whether name is a well-known value type.
func IsWellKnownType(name string) bool {
	_, ok := wellKnownScalars[name]
	return ok
}

// ParseScalar parses the "type[,format]" notation used by configuration.
func ParseScalar(text string) Scalar {
	kind, format, _ := strings.Cut(text, ",")
	return Scalar{Type: strings.TrimSpace(kind), Format: strings.TrimSpace(format)}
}
