// Package gen builds a components document from Go sources or a type
// catalog and writes it as JSON or YAML.
package gen

import (
	"context"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/griffnb/core-schema/internal/catalog"
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/console"
	"github.com/griffnb/core-schema/internal/document"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/gotypes"
	"github.com/griffnb/core-schema/internal/loader"
	"github.com/griffnb/core-schema/internal/orchestrator"
	"github.com/griffnb/core-schema/internal/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"
)

type genTypeWriter func(*Config, interface{}) error

// Gen presents a generate tool for component documents.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      console.Logger,
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"json": gen.writeJSON,
		"yaml": gen.writeYAML,
		"yml":  gen.writeYAML,
	}

	return &gen
}

// Build resolves the configured types and writes the document. Nothing is
// written unless the whole document was built and validated.
func (g *Gen) Build(ctx context.Context, config *Config) error {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}

	if config.ConfigFile != "" {
		console.Logger.Debug("Using config from %s\n", config.ConfigFile)
		fc, err := loadConfigFile(config.ConfigFile)
		if err != nil {
			return err
		}
		fc.apply(config)
	}

	overrides, err := readOverrides(config)
	if err != nil {
		return err
	}
	if len(overrides) > 0 {
		console.Logger.Debug("Using overrides from %s\n", config.OverridesFile)
	}
	overrides = mergeMissing(overrides, config.Overrides)

	if config.Format == "" {
		config.Format = FormatOpenAPI3
	}
	if config.Title == "" {
		config.Title = defaultTitle(config.SearchDir)
	}

	types, roots, err := g.loadTypes(ctx, config)
	if err != nil {
		return err
	}

	console.Logger.Debug("Resolving %d types....\n", len(roots))

	orc := orchestrator.New(types, &orchestrator.Config{
		PropNamingStrategy: config.PropNamingStrategy,
		RequiredByDefault:  config.RequiredByDefault,
		AccessorMode:       config.AccessorMode,
		Overrides:          overrides,
		Scalars:            parseScalars(config.Scalars),
		Concurrency:        config.Concurrency,
		Debug:              g.debug,
	})

	if err := orc.Resolve(ctx, roots); err != nil {
		return err
	}
	if err := registerBodies(orc, types, config); err != nil {
		return err
	}

	g.debug.Printf("Sanitizing components to remove invalid numeric values...")
	sanitizeRegistry(orc.Registry())

	doc, err := g.render(ctx, orc.Registry(), config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if typeWriter, ok := g.outputTypeMap[outputType]; ok {
			if err := typeWriter(config, doc); err != nil {
				return err
			}
		} else {
			console.Logger.Warn("output type '%s' not supported\n", outputType)
		}
	}

	return nil
}

// loadTypes builds the type system and picks the root types.
func (g *Gen) loadTypes(ctx context.Context, config *Config) (domain.TypeSystem, []domain.TypeDescriptor, error) {
	if config.CatalogFile != "" {
		c, err := catalog.LoadFile(config.CatalogFile)
		if err != nil {
			return nil, nil, err
		}
		names := config.Types
		if len(names) == 0 {
			names = c.Names()
		}
		roots, err := lookupAll(c, names)
		return c, roots, err
	}

	if config.SearchDir != "" {
		if _, err := os.Stat(config.SearchDir); os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("dir: %s does not exist", config.SearchDir)
		}
	}

	service := loader.NewService(
		loader.WithDir(config.SearchDir),
		loader.WithBuildTags(splitList(config.BuildTags)),
		loader.WithParseVendor(config.ParseVendor),
		loader.WithParseInternal(config.ParseInternal),
		loader.WithParseDependency(config.ParseDependency),
		loader.WithDependencyDepth(config.ParseDepth),
		loader.WithExcludes(parseExcludes(config.Excludes)),
		loader.WithPackagePrefix(splitList(config.PackagePrefix)),
		loader.WithDebugger(g.debug),
	)

	result, err := service.Load(ctx, config.Patterns...)
	if err != nil {
		return nil, nil, err
	}

	u := gotypes.FromPackages(result.Packages, result.Dependencies...)
	if len(config.Types) == 0 {
		return u, u.Roots(), nil
	}
	roots, err := lookupAll(u, config.Types)
	return u, roots, err
}

func lookupAll(types domain.TypeSystem, names []string) ([]domain.TypeDescriptor, error) {
	roots := make([]domain.TypeDescriptor, 0, len(names))
	for _, name := range names {
		t, ok := types.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", orchestrator.ErrUnknownType, name)
		}
		roots = append(roots, t)
	}
	return roots, nil
}

// registerBodies registers the configured responses and request bodies in
// key order.
func registerBodies(orc *orchestrator.Service, types domain.TypeSystem, config *Config) error {
	for _, key := range sortedKeys(config.Responses) {
		body, err := toBody(types, config.Responses[key])
		if err != nil {
			return fmt.Errorf("response %s: %w", key, err)
		}
		if err := orc.RegisterResponse(key, body); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(config.RequestBodies) {
		body, err := toBody(types, config.RequestBodies[key])
		if err != nil {
			return fmt.Errorf("request body %s: %w", key, err)
		}
		if err := orc.RegisterRequestBody(key, body); err != nil {
			return err
		}
	}
	return nil
}

func toBody(types domain.TypeSystem, b Body) (orchestrator.Body, error) {
	body := orchestrator.Body{Description: b.Description, MediaType: b.MediaType, Required: b.Required}
	if b.Type == "" {
		return body, nil
	}
	t, ok := types.Lookup(b.Type)
	if !ok {
		return body, fmt.Errorf("%w: %s", orchestrator.ErrUnknownType, b.Type)
	}
	body.Type = t
	return body, nil
}

// render converts the registry to the configured format.
func (g *Gen) render(ctx context.Context, reg *component.Registry, config *Config) (interface{}, error) {
	info := document.Info{Title: config.Title, Version: config.Version, Description: config.Description}

	switch config.Format {
	case FormatOpenAPI3:
		doc, err := document.OpenAPI3(reg, info)
		if err != nil {
			return nil, err
		}
		if err := document.ValidateOpenAPI3(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	case FormatSwagger2:
		return document.Swagger2(reg, info)
	}
	return nil, fmt.Errorf("unsupported format %q", config.Format)
}

// baseName is the output file name without extension.
func baseName(config *Config) string {
	name := "openapi"
	if config.Format == FormatSwagger2 {
		name = "swagger"
	}
	if config.InstanceName != "" {
		name = config.InstanceName + "_" + name
	}
	return name
}

func (g *Gen) writeJSON(config *Config, doc interface{}) error {
	jsonFileName := path.Join(config.OutputDir, baseName(config)+".json")

	b, err := g.jsonIndent(doc)
	if err != nil {
		return err
	}

	err = g.writeFile(b, jsonFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create %s at %+v\n", path.Base(jsonFileName), jsonFileName)

	return nil
}

func (g *Gen) writeYAML(config *Config, doc interface{}) error {
	yamlFileName := path.Join(config.OutputDir, baseName(config)+".yaml")

	b, err := g.json(doc)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot covert json to yaml error: %s", err)
	}

	err = g.writeFile(y, yamlFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create %s at %+v\n", path.Base(yamlFileName), yamlFileName)

	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

// defaultTitle names the document after the search directory,
// e.g. "order-service" becomes "Order Service".
func defaultTitle(dir string) string {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	words := strings.FieldsFunc(filepath.Base(abs), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// sanitizeRegistry removes infinity and NaN values from every registered
// schema. These values are not valid in JSON.
func sanitizeRegistry(reg *component.Registry) {
	for _, key := range reg.SchemaKeys() {
		s, _ := reg.Schema(key)
		sanitizeSchema(s)
	}
}

// sanitizeSchema recursively sanitizes a schema
func sanitizeSchema(s *schema.Schema) {
	if s == nil {
		return
	}

	// Sanitize numeric constraints
	if s.Minimum != nil && (math.IsInf(*s.Minimum, 0) || math.IsNaN(*s.Minimum)) {
		s.Minimum = nil
	}
	if s.Maximum != nil && (math.IsInf(*s.Maximum, 0) || math.IsNaN(*s.Maximum)) {
		s.Maximum = nil
	}

	// Sanitize default and example if numeric
	if f, ok := s.Default.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		s.Default = nil
	}
	if f, ok := s.Example.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		s.Example = nil
	}

	// Recursively sanitize properties
	for _, name := range s.Properties.Keys() {
		prop, _ := s.Properties.Get(name)
		if !prop.IsRef() {
			sanitizeSchema(prop.Value)
		}
	}

	// Sanitize array items and map values
	if s.Items != nil && !s.Items.IsRef() {
		sanitizeSchema(s.Items.Value)
	}
	if s.AdditionalProperties != nil && !s.AdditionalProperties.IsRef() {
		sanitizeSchema(s.AdditionalProperties.Value)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
