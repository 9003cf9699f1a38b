package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming strategy constants
const (
	// CamelCase names properties in lowerCamelCase.
	CamelCase = "camelcase"
	// PascalCase names properties in PascalCase.
	PascalCase = "pascalcase"
	// SnakeCase names properties in snake_case.
	SnakeCase = "snakecase"
)

// ToSnakeCase converts a name to snake_case
func ToSnakeCase(in string) string {
	var (
		runes  = []rune(in)
		length = len(runes)
		out    []rune
	)

	for idx := 0; idx < length; idx++ {
		if idx > 0 && unicode.IsUpper(runes[idx]) &&
			((idx+1 < length && unicode.IsLower(runes[idx+1])) || unicode.IsLower(runes[idx-1])) {
			out = append(out, '_')
		}

		out = append(out, unicode.ToLower(runes[idx]))
	}

	return string(out)
}

// ToLowerCamelCase converts a name to lowerCamelCase. A leading run of
// capitals is lowered as a unit, keeping the capital that starts the next
// word: "URLPath" becomes "urlPath", "ID" becomes "id".
func ToLowerCamelCase(in string) string {
	runes := []rune(in)
	for i := 0; i < len(runes) && unicode.IsUpper(runes[i]); i++ {
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// ToPascalCase converts a name to PascalCase. Casers keep state, so one is
// built per call.
func ToPascalCase(in string) string {
	return cases.Title(language.Und, cases.NoLower).String(in)
}

// ApplyNamingStrategy applies the specified naming strategy to a member name
func ApplyNamingStrategy(name string, strategy string) string {
	switch strategy {
	case SnakeCase:
		return ToSnakeCase(name)
	case PascalCase:
		return ToPascalCase(name)
	default:
		return ToLowerCamelCase(name)
	}
}

var accessorPrefixes = []string{"get", "is", "Get", "Is"}

// accessorProperty turns an accessor method name into its property name:
// the get/is prefix is removed and the rest decapitalized. Names without
// a prefix followed by a capital are not accessors.
func accessorProperty(method string) (string, bool) {
	for _, prefix := range accessorPrefixes {
		rest, ok := strings.CutPrefix(method, prefix)
		if !ok || rest == "" {
			continue
		}
		if r := []rune(rest)[0]; !unicode.IsUpper(r) {
			continue
		}
		return decapitalize(rest), true
	}
	return "", false
}

// decapitalize lowers the first rune unless the name starts with two
// capitals, so "URL" stays "URL" and "Name" becomes "name".
func decapitalize(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return name
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
