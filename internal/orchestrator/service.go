// Package orchestrator runs resolution passes over a set of root types and
// merges their components into one registry.
package orchestrator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/resolver"
	"github.com/griffnb/core-schema/internal/schema"
)

// Service coordinates resolution of root types into a components registry.
type Service struct {
	types    domain.TypeSystem
	resolver *resolver.Service
	registry *component.Registry
	config   *Config
}

// Config holds orchestrator configuration options.
type Config struct {
	PropNamingStrategy string
	RequiredByDefault  bool
	AccessorMode       bool
	Overrides          map[string]string
	Scalars            map[string]domain.Scalar
	// Concurrency bounds the number of passes run at once. Zero means one
	// per CPU.
	Concurrency int
	Debug       Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new orchestrator over types with the given configuration.
func New(types domain.TypeSystem, config *Config) *Service {
	if config == nil {
		config = &Config{}
	}

	// Apply defaults for zero values
	if config.PropNamingStrategy == "" {
		config.PropNamingStrategy = resolver.CamelCase
	}
	if config.Overrides == nil {
		config.Overrides = make(map[string]string)
	}
	if config.Scalars == nil {
		config.Scalars = make(map[string]domain.Scalar)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}

	options := []resolver.Option{
		resolver.WithNamingStrategy(config.PropNamingStrategy),
		resolver.WithRequiredByDefault(config.RequiredByDefault),
		resolver.WithAccessorMode(config.AccessorMode),
		resolver.WithOverrides(config.Overrides),
		resolver.WithScalars(config.Scalars),
	}
	if config.Debug != nil {
		options = append(options, resolver.WithDebugger(config.Debug))
	}

	return &Service{
		types:    types,
		resolver: resolver.New(types, options...),
		registry: component.NewRegistry(),
		config:   config,
	}
}

// Registry returns the registry the service merges into.
func (s *Service) Registry() *component.Registry {
	return s.registry
}

// Resolve runs one pass per root and registers every component found.
// Passes run concurrently; their results are merged in root order, so the
// registry content does not depend on scheduling.
func (s *Service) Resolve(ctx context.Context, roots []domain.TypeDescriptor) error {
	if s.config.Debug != nil {
		s.config.Debug.Printf("Orchestrator: Resolving %d root types", len(roots))
	}

	passes, err := s.resolveParallel(ctx, roots)
	if err != nil {
		return err
	}

	for _, p := range passes {
		if err := s.registry.Register(p.result.Schemas, p.result.Owners); err != nil {
			return fmt.Errorf("failed to register components of %s: %w", p.root, err)
		}
	}

	if s.config.Debug != nil {
		s.config.Debug.Printf("Orchestrator: Registered %d components", len(s.registry.SchemaKeys()))
	}

	return s.checkReferences()
}

// ResolveNames looks every name up in the type system and resolves the
// resulting roots.
func (s *Service) ResolveNames(ctx context.Context, names []string) error {
	roots := make([]domain.TypeDescriptor, 0, len(names))
	for _, name := range names {
		t, ok := s.types.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownType, name)
		}
		roots = append(roots, t)
	}
	return s.Resolve(ctx, roots)
}

// Body describes a response or request body whose content is a type.
type Body struct {
	Description string
	// MediaType defaults to application/json.
	MediaType string
	Type      domain.TypeDescriptor
	Required  bool
}

func (b Body) mediaType() string {
	if b.MediaType == "" {
		return "application/json"
	}
	return b.MediaType
}

// RegisterResponse resolves the body type, registers its components and
// merges a response under key. Registering the same key again adds content
// types to the existing response.
func (s *Service) RegisterResponse(key string, body Body) error {
	content, err := s.content(body)
	if err != nil {
		return fmt.Errorf("failed to resolve response %s: %w", key, err)
	}
	return s.registry.RegisterResponse(key, &schema.Response{
		Description: body.Description,
		Content:     content,
	})
}

// RegisterRequestBody is RegisterResponse for request bodies.
func (s *Service) RegisterRequestBody(key string, body Body) error {
	content, err := s.content(body)
	if err != nil {
		return fmt.Errorf("failed to resolve request body %s: %w", key, err)
	}
	return s.registry.RegisterRequestBody(key, &schema.RequestBody{
		Description: body.Description,
		Required:    body.Required,
		Content:     content,
	})
}

func (s *Service) content(body Body) (map[string]*schema.MediaType, error) {
	if body.Type == nil {
		return nil, nil
	}
	result, err := s.resolver.ResolveType(body.Type)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Register(result.Schemas, result.Owners); err != nil {
		return nil, err
	}
	return map[string]*schema.MediaType{
		body.mediaType(): {Schema: result.Root},
	}, nil
}

// checkReferences fails when a registered component points at a key that
// was never registered.
func (s *Service) checkReferences() error {
	missing := MissingReferences(s.registry)
	if len(missing) == 0 {
		return nil
	}
	if s.config.Debug != nil {
		for _, ref := range missing {
			s.config.Debug.Printf("Orchestrator: Dangling reference %s", ref)
		}
	}
	return fmt.Errorf("%w: %s", ErrDanglingReference, missing[0])
}
