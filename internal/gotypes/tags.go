package gotypes

import (
	"reflect"
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
)

// tagAttributes translates the struct tag of a field into member
// attributes. named reports whether the json tag names the field, which
// decides if an embedded struct is flattened or becomes a property.
func tagAttributes(tag reflect.StructTag) (attrs domain.Attributes, named bool) {
	attrs = domain.Attributes{}

	name, omitEmpty, ignore := parseJSONTag(tag)
	switch {
	case ignore:
		attrs.Set(domain.AttrExclude, "true")
	case name != "":
		attrs.Set(domain.AttrName, name)
		named = true
	}
	if omitEmpty {
		attrs.Set(domain.AttrOptional, "true")
	}

	if isSwaggerIgnore(tag) {
		attrs.Set(domain.AttrExclude, "true")
	}

	required, optional, min, max := parseValidationTags(tag)
	if required && !omitEmpty {
		attrs.Set(domain.AttrRequired, "true")
	}
	if optional {
		attrs.Set(domain.AttrOptional, "true")
	}
	if min != "" {
		attrs.Set(domain.AttrMin, min)
	}
	if max != "" {
		attrs.Set(domain.AttrMax, max)
	}
	if values := extractEnumValues(tag); len(values) > 0 {
		attrs.Set(domain.AttrEnum, strings.Join(values, " "))
	}
	if enums := tag.Get("enums"); enums != "" {
		attrs.Set(domain.AttrEnum, strings.Join(splitComma(enums), " "))
	}

	for tagName, attr := range map[string]string{
		"example":     domain.AttrExample,
		"default":     domain.AttrDefault,
		"format":      domain.AttrFormat,
		"pattern":     domain.AttrPattern,
		"swaggertype": domain.AttrSchemaType,
		"minimum":     domain.AttrMinimum,
		"maximum":     domain.AttrMaximum,
		"minLength":   domain.AttrMinLength,
		"maxLength":   domain.AttrMaxLength,
		"deprecated":  domain.AttrDeprecated,
	} {
		if v, ok := tag.Lookup(tagName); ok {
			attrs.Set(attr, strings.TrimSpace(v))
		}
	}

	return attrs, named
}

// parseJSONTag parses the json struct tag and returns field name, omitempty flag, and ignore flag.
// If no json tag is present, falls back to column tag for custom model systems.
//
// Examples:
//   - `json:"first_name"` → ("first_name", false, false)
//   - `json:"count,omitempty"` → ("count", true, false)
//   - `json:"-"` → ("", false, true)
//   - `column:"external_id"` (no json tag) → ("external_id", false, false)
func parseJSONTag(tag reflect.StructTag) (name string, omitEmpty bool, ignore bool) {
	jsonTag := tag.Get("json")
	if jsonTag == "" {
		if columnTag := tag.Get("column"); columnTag != "" {
			return strings.TrimSpace(columnTag), false, false
		}
		return "", false, false
	}

	parts := strings.Split(jsonTag, ",")
	name = strings.TrimSpace(parts[0])
	if name == "-" && len(parts) == 1 {
		return "", false, true
	}

	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "omitempty" {
			omitEmpty = true
			break
		}
	}

	return name, omitEmpty, false
}

// parseValidationTags parses binding and validate struct tags and returns validation constraints.
//
// Examples:
//   - `binding:"required"` → (true, false, "", "")
//   - `validate:"required,min=1,max=100"` → (true, false, "1", "100")
//   - `validate:"optional"` → (false, true, "", "")
func parseValidationTags(tag reflect.StructTag) (required bool, optional bool, min string, max string) {
	rules := append(splitComma(tag.Get("binding")), splitComma(tag.Get("validate"))...)

	for _, rule := range rules {
		key, value, _ := strings.Cut(rule, "=")
		switch key {
		case "required":
			required = true
		case "optional", "omitempty":
			optional = true
		case "min", "gte":
			min = strings.TrimSpace(value)
		case "max", "lte":
			max = strings.TrimSpace(value)
		}
	}

	return required, optional, min, max
}

// isSwaggerIgnore checks if the field has swaggerignore:"true" tag.
func isSwaggerIgnore(tag reflect.StructTag) bool {
	return strings.EqualFold(strings.TrimSpace(tag.Get("swaggerignore")), "true")
}

// extractEnumValues extracts enum values from oneof validation tag.
//
// Examples:
//   - `validate:"oneof=red green blue"` → ["red", "green", "blue"]
//   - `validate:"oneof='value 1' 'value 2'"` → ["value 1", "value 2"]
func extractEnumValues(tag reflect.StructTag) []string {
	for _, rule := range splitComma(tag.Get("validate")) {
		if values, ok := strings.CutPrefix(rule, "oneof="); ok && values != "" {
			return parseOneOfValues(values)
		}
	}
	return nil
}

// parseOneOfValues parses space-separated values, handling single-quoted strings.
func parseOneOfValues(input string) []string {
	var (
		values  []string
		current strings.Builder
		inQuote bool
	)

	for i := 0; i < len(input); i++ {
		switch c := input[i]; {
		case c == '\'':
			inQuote = !inQuote
		case c == ' ' && !inQuote:
			if current.Len() > 0 {
				values = append(values, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}

	if current.Len() > 0 {
		values = append(values, current.String())
	}

	return values
}

func splitComma(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
