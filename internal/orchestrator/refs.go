package orchestrator

import (
	"errors"
	"sort"

	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/schema"
)

var (
	// ErrUnknownType is returned when a root name is not found in the type
	// system.
	ErrUnknownType = errors.New("unknown type")
	// ErrDanglingReference is returned when a component refers to a key
	// that is not registered.
	ErrDanglingReference = errors.New("dangling component reference")
)

// CollectReferences walks every registered schema, response and request
// body and returns the unique set of references found. Values describe
// where each reference was first encountered (e.g. "schemas/Order").
func CollectReferences(reg *component.Registry) map[string]string {
	refs := make(map[string]string)

	for _, key := range reg.SchemaKeys() {
		s, _ := reg.Schema(key)
		collectRefsFromSchema(s, refs, component.KindSchemas+"/"+key)
	}
	for _, key := range reg.ResponseKeys() {
		resp, _ := reg.Response(key)
		collectRefsFromContent(resp.Content, refs, component.KindResponses+"/"+key)
	}
	for _, key := range reg.RequestBodyKeys() {
		body, _ := reg.RequestBody(key)
		collectRefsFromContent(body.Content, refs, component.KindRequestBodies+"/"+key)
	}

	return refs
}

// MissingReferences returns, sorted, the references that do not resolve to
// a registered component.
func MissingReferences(reg *component.Registry) []string {
	var missing []string
	for ref := range CollectReferences(reg) {
		kind, key, ok := component.KeyFromReference(ref)
		if !ok || !registered(reg, kind, key) {
			missing = append(missing, ref)
		}
	}
	sort.Strings(missing)
	return missing
}

func registered(reg *component.Registry, kind, key string) bool {
	var ok bool
	switch kind {
	case component.KindSchemas:
		_, ok = reg.Schema(key)
	case component.KindResponses:
		_, ok = reg.Response(key)
	case component.KindRequestBodies:
		_, ok = reg.RequestBody(key)
	}
	return ok
}

func collectRefsFromContent(content map[string]*schema.MediaType, refs map[string]string, source string) {
	for _, mt := range schema.MediaTypes(content) {
		collectRefsFromRef(content[mt].Schema, refs, source)
	}
}

// collectRefsFromRef records ref's target or walks its inline schema.
func collectRefsFromRef(r *schema.SchemaRef, refs map[string]string, source string) {
	if r == nil {
		return
	}
	if r.IsRef() {
		if _, exists := refs[r.Ref]; !exists {
			refs[r.Ref] = source
		}
		return
	}
	collectRefsFromSchema(r.Value, refs, source)
}

// collectRefsFromSchema recursively walks a schema tree and collects all
// references.
func collectRefsFromSchema(s *schema.Schema, refs map[string]string, source string) {
	if s == nil {
		return
	}
	collectRefsFromRef(s.Items, refs, source)
	collectRefsFromRef(s.AdditionalProperties, refs, source)
	for _, name := range s.Properties.Keys() {
		prop, _ := s.Properties.Get(name)
		collectRefsFromRef(prop, refs, source)
	}
}
