package component

import (
	"sort"
	"sync"

	"github.com/griffnb/core-schema/internal/schema"
)

// Registry is the components section of the document under construction.
// It lives for a whole generation run; every registration merges into what
// is already there.
type Registry struct {
	mu            sync.RWMutex
	schemas       schema.SchemaMap
	owners        map[string]string
	responses     map[string]*schema.Response
	requestBodies map[string]*schema.RequestBody
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:       make(schema.SchemaMap),
		owners:        make(map[string]string),
		responses:     make(map[string]*schema.Response),
		requestBodies: make(map[string]*schema.RequestBody),
	}
}

// Register merges a schema map into the registry. owners maps each key to
// the identity of the type that produced it; a key claimed by a different
// type must carry a compatible schema or registration fails with a
// *CollisionError. Keys are processed in sorted order.
func (r *Registry) Register(schemas schema.SchemaMap, owners map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(schemas))
	for k := range schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := r.registerSchema(key, schemas[key], owners[key]); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSchema merges one schema under key.
func (r *Registry) RegisterSchema(key string, s *schema.Schema, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerSchema(key, s, owner)
}

func (r *Registry) registerSchema(key string, s *schema.Schema, owner string) error {
	if !ValidKey(key) {
		return &KeyViolationError{Type: owner, Key: key}
	}

	existing, ok := r.schemas[key]
	if !ok {
		r.schemas[key] = s.Clone()
		r.owners[key] = owner
		return nil
	}

	current := r.owners[key]
	if current != "" && owner != "" && current != owner && !schema.Compatible(existing, s) {
		return &CollisionError{Key: key, Existing: current, Incoming: owner}
	}

	r.schemas[key] = schema.Merge(existing, s)
	if current == "" {
		r.owners[key] = owner
	}
	return nil
}

// RegisterResponse merges a response fragment under key.
func (r *Registry) RegisterResponse(key string, resp *schema.Response) error {
	if !ValidKey(key) {
		return &KeyViolationError{Type: "response", Key: key}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key] = schema.MergeResponses(r.responses[key], resp)
	return nil
}

// RegisterRequestBody merges a request body fragment under key.
func (r *Registry) RegisterRequestBody(key string, body *schema.RequestBody) error {
	if !ValidKey(key) {
		return &KeyViolationError{Type: "request body", Key: key}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.requestBodies[key]; ok {
		r.requestBodies[key] = schema.MergeRequestBodies(existing, body)
		return nil
	}
	r.requestBodies[key] = schema.MergeRequestBodies(body, nil)
	return nil
}

// Schema returns a registered schema.
func (r *Registry) Schema(key string) (*schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[key]
	return s, ok
}

// Owner returns the identity of the type that first claimed key.
func (r *Registry) Owner(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owners[key]
}

// Response returns a registered response.
func (r *Registry) Response(key string) (*schema.Response, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resp, ok := r.responses[key]
	return resp, ok
}

// RequestBody returns a registered request body.
func (r *Registry) RequestBody(key string) (*schema.RequestBody, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	body, ok := r.requestBodies[key]
	return body, ok
}

// SchemaKeys returns the registered schema keys in sorted order.
func (r *Registry) SchemaKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.schemas)
}

// ResponseKeys returns the registered response keys in sorted order.
func (r *Registry) ResponseKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.responses)
}

// RequestBodyKeys returns the registered request body keys in sorted order.
func (r *Registry) RequestBodyKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.requestBodies)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
