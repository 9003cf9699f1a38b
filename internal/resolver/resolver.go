// Package resolver turns types of a domain.TypeSystem into schema fragments.
// Objects and enums become named components referenced by key; scalars and
// containers are inlined at their point of use.
package resolver

import (
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/schema"
)

// Service resolves types against one type system.
type Service struct {
	types             domain.TypeSystem
	namingStrategy    string
	requiredByDefault bool
	accessorMode      bool
	overrides         map[string]string
	scalars           map[string]domain.Scalar
	debug             domain.Debugger
}

// Option is a functional option for configuring Service
type Option func(*Service)

// New creates a resolver over types.
func New(types domain.TypeSystem, options ...Option) *Service {
	s := &Service{
		types:          types,
		namingStrategy: CamelCase,
		overrides:      make(map[string]string),
		scalars:        make(map[string]domain.Scalar),
		debug:          &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithNamingStrategy sets the property naming strategy
func WithNamingStrategy(strategy string) Option {
	return func(s *Service) {
		if strategy != "" {
			s.namingStrategy = strategy
		}
	}
}

// WithRequiredByDefault marks every property required unless it is
// explicitly optional.
func WithRequiredByDefault(required bool) Option {
	return func(s *Service) {
		s.requiredByDefault = required
	}
}

// WithAccessorMode derives interface properties from getX/isX accessors.
func WithAccessorMode(enabled bool) Option {
	return func(s *Service) {
		s.accessorMode = enabled
	}
}

// WithOverrides replaces types by name before classification. An empty
// replacement skips the type.
func WithOverrides(overrides map[string]string) Option {
	return func(s *Service) {
		for k, v := range overrides {
			s.overrides[k] = v
		}
	}
}

// WithScalars registers extra well-known value types by qualified name.
func WithScalars(scalars map[string]domain.Scalar) Option {
	return func(s *Service) {
		for k, v := range scalars {
			s.scalars[k] = v
		}
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger domain.Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}

// Result is the outcome of one resolution.
type Result struct {
	// Root is what a use site embeds for the resolved type: a reference
	// for objects and enums, an inline schema otherwise.
	Root *schema.SchemaRef
	// Schemas holds every named component discovered by the pass.
	Schemas schema.SchemaMap
	// Owners maps each component key to the identity of its type.
	Owners map[string]string
}

// RootSchema returns the schema of the resolved type itself.
func (r *Result) RootSchema() *schema.Schema {
	if r.Root.IsRef() {
		_, key, _ := component.KeyFromReference(r.Root.Ref)
		return r.Schemas[key]
	}
	return r.Root.Value
}

// Resolve resolves t within ctx and returns the components discovered by
// the pass so far. Resolving the same type twice in one context returns the
// memoized fragment without running any mapper again.
func (s *Service) Resolve(ctx *Context, t domain.TypeDescriptor) (*Result, error) {
	e, err := s.dispatch(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := ctx.settle(); err != nil {
		return nil, err
	}
	return &Result{
		Root:    e.use(),
		Schemas: ctx.Schemas(),
		Owners:  ctx.Owners(),
	}, nil
}

// ResolveType resolves t in a fresh context.
func (s *Service) ResolveType(t domain.TypeDescriptor) (*Result, error) {
	return s.Resolve(NewContext(), t)
}

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
