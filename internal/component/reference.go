package component

import (
	"strings"

	"github.com/griffnb/core-schema/internal/schema"
)

// Component sections of a document.
const (
	KindSchemas       = "schemas"
	KindResponses     = "responses"
	KindRequestBodies = "requestBodies"
	KindParameters    = "parameters"
)

const refPrefix = "#/components/"

// Reference builds the reference string of a component.
func Reference(kind, key string) string {
	return refPrefix + kind + "/" + key
}

// RefSchema builds a reference to a schema component.
func RefSchema(key string) *schema.SchemaRef {
	return schema.NewRef(Reference(KindSchemas, key))
}

// KeyFromReference splits a reference string into its section and key.
func KeyFromReference(ref string) (kind, key string, ok bool) {
	rest, found := strings.CutPrefix(ref, refPrefix)
	if !found {
		return "", "", false
	}
	kind, key, ok = strings.Cut(rest, "/")
	if !ok || kind == "" || key == "" {
		return "", "", false
	}
	return kind, key, true
}
