package gen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/griffnb/core-schema/internal/domain"
	"gopkg.in/yaml.v3"
)

var open = os.Open

// DefaultOverridesFile is the location the generator looks for type overrides.
const DefaultOverridesFile = ".swaggo"

// Output formats.
const (
	FormatOpenAPI3 = "openapi3"
	FormatSwagger2 = "swagger2"
)

// Body declares a response or request body component by type name.
type Body struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	MediaType   string `yaml:"mediaType"`
	Required    bool   `yaml:"required"`
}

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger

	// SearchDir is the directory Go patterns are resolved in
	SearchDir string

	// Patterns are the Go package patterns to load, "./..." when empty
	Patterns []string

	// CatalogFile is a YAML type catalog used instead of Go sources
	CatalogFile string

	// Types are the root type names; every exported type when empty
	Types []string

	// Excludes dirs in SearchDir, comma separated
	Excludes string

	// BuildTags are passed to the Go build system, comma separated
	BuildTags string

	// Parse only packages whose import path match the given prefix, comma separated
	PackagePrefix string

	// ParseVendor whether vendor folders are loaded
	ParseVendor bool

	// ParseInternal whether internal dependency packages contribute docs
	ParseInternal bool

	// ParseDependency whether imported packages contribute docs
	ParseDependency bool

	// ParseDepth dependency parse depth
	ParseDepth int

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// InstanceName prefixes the generated file names
	InstanceName string

	// Format is openapi3 or swagger2
	Format string

	Title       string
	Version     string
	Description string

	// PropNamingStrategy represents property naming strategy like snake case,camel case,pascal case
	PropNamingStrategy string

	// RequiredByDefault set validation required for all fields by default
	RequiredByDefault bool

	// AccessorMode derives interface properties from accessor methods
	AccessorMode bool

	// OverridesFile defines global type overrides.
	OverridesFile string

	// ConfigFile is an optional YAML file; values set directly on Config win
	ConfigFile string

	// Overrides replace or skip types by name
	Overrides map[string]string

	// Scalars map extra qualified type names to "type[,format]"
	Scalars map[string]string

	// Concurrency bounds parallel resolution passes
	Concurrency int

	Responses     map[string]Body
	RequestBodies map[string]Body
}

// fileConfig is the YAML form of Config.
type fileConfig struct {
	Title             string            `yaml:"title"`
	Version           string            `yaml:"version"`
	Description       string            `yaml:"description"`
	Format            string            `yaml:"format"`
	PropertyStrategy  string            `yaml:"propertyStrategy"`
	RequiredByDefault bool              `yaml:"requiredByDefault"`
	AccessorMode      bool              `yaml:"accessorMode"`
	Types             []string          `yaml:"types"`
	Scalars           map[string]string `yaml:"scalars"`
	Overrides         map[string]string `yaml:"overrides"`
	Responses         map[string]Body   `yaml:"responses"`
	RequestBodies     map[string]Body   `yaml:"requestBodies"`
}

// loadConfigFile reads a YAML config file.
func loadConfigFile(path string) (*fileConfig, error) {
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file: %w", err)
	}
	defer f.Close()

	return parseConfigFile(f)
}

func parseConfigFile(r io.Reader) (*fileConfig, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}
	return &fc, nil
}

// apply fills every unset field of config from the file.
func (fc *fileConfig) apply(config *Config) {
	setString(&config.Title, fc.Title)
	setString(&config.Version, fc.Version)
	setString(&config.Description, fc.Description)
	setString(&config.Format, fc.Format)
	setString(&config.PropNamingStrategy, fc.PropertyStrategy)
	config.RequiredByDefault = config.RequiredByDefault || fc.RequiredByDefault
	config.AccessorMode = config.AccessorMode || fc.AccessorMode
	if len(config.Types) == 0 {
		config.Types = fc.Types
	}
	config.Scalars = mergeMissing(config.Scalars, fc.Scalars)
	config.Overrides = mergeMissing(config.Overrides, fc.Overrides)
	config.Responses = mergeMissing(config.Responses, fc.Responses)
	config.RequestBodies = mergeMissing(config.RequestBodies, fc.RequestBodies)
}

func setString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func mergeMissing[V any](dst, src map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}

// readOverrides loads the overrides file named in config. A missing default
// file means there are no overrides.
func readOverrides(config *Config) (map[string]string, error) {
	if config.OverridesFile == "" {
		return nil, nil
	}

	overridesFile, err := open(config.OverridesFile)
	if err != nil {
		// Don't bother reporting if the default file is missing; assume there are no overrides
		if config.OverridesFile == DefaultOverridesFile && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open overrides file: %s: %w", config.OverridesFile, err)
	}
	defer overridesFile.Close()

	return parseOverrides(overridesFile)
}

// Read and parse the overrides file.
func parseOverrides(r io.Reader) (map[string]string, error) {
	overrides := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		parts := strings.Fields(line)

		switch len(parts) {
		case 0:
			// only whitespace
			continue
		case 2:
			// either a skip or malformed
			if parts[0] != "skip" {
				return nil, fmt.Errorf("could not parse override: '%s'", line)
			}

			overrides[parts[1]] = ""
		case 3:
			// either a replace or malformed
			if parts[0] != "replace" {
				return nil, fmt.Errorf("could not parse override: '%s'", line)
			}

			overrides[parts[1]] = parts[2]
		default:
			return nil, fmt.Errorf("could not parse override: '%s'", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading overrides file: %w", err)
	}

	return overrides, nil
}

// parseScalars turns "type[,format]" values into scalars.
func parseScalars(scalars map[string]string) map[string]domain.Scalar {
	out := make(map[string]domain.Scalar, len(scalars))
	for name, text := range scalars {
		out[name] = domain.ParseScalar(text)
	}
	return out
}

// splitList converts a comma-separated string to a slice.
func splitList(list string) []string {
	result := []string{}
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parseExcludes converts comma-separated exclude string to map.
func parseExcludes(excludes string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, exclude := range splitList(excludes) {
		result[exclude] = struct{}{}
	}
	return result
}
