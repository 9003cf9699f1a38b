package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/griffnb/core-schema/internal/component"
	"github.com/griffnb/core-schema/internal/document"
	"github.com/griffnb/core-schema/internal/domain"
	"github.com/griffnb/core-schema/internal/orchestrator"
	"github.com/griffnb/core-schema/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

const catalogFile = "testdata/catalog.yaml"

var outputTypes = []string{"json", "yaml"}

func readJSON(t *testing.T, file string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func schemas(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	components, ok := doc["components"].(map[string]any)
	require.True(t, ok, "missing components")
	s, ok := components["schemas"].(map[string]any)
	require.True(t, ok, "missing schemas")
	return s
}

func catalogConfig(t *testing.T) *Config {
	return &Config{
		CatalogFile: catalogFile,
		OutputDir:   t.TempDir(),
		OutputTypes: outputTypes,
		Title:       "Shop",
		Version:     "1.0.0",
	}
}

func TestGen_Build(t *testing.T) {
	config := catalogConfig(t)
	require.NoError(t, New().Build(context.Background(), config))

	expectedFiles := []string{
		filepath.Join(config.OutputDir, "openapi.json"),
		filepath.Join(config.OutputDir, "openapi.yaml"),
	}
	for _, expectedFile := range expectedFiles {
		_, err := os.Stat(expectedFile)
		require.NoError(t, err)
	}

	doc := readJSON(t, expectedFiles[0])
	assert.Equal(t, document.OpenAPIVersion, doc["openapi"])
	s := schemas(t, doc)
	assert.Len(t, s, 3)

	order := s["Order"].(map[string]any)
	assert.Equal(t, "A purchase.", order["description"])
	props := order["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/Color"}, props["color"])
	articles := props["articles"].(map[string]any)
	assert.Equal(t, "array", articles["type"])

	article := s["Article"].(map[string]any)
	assert.Equal(t, []any{"sku"}, article["required"])

	data, err := os.ReadFile(expectedFiles[1])
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, doc, fromYAML)
}

func TestGen_jsonIsIndented(t *testing.T) {
	config := catalogConfig(t)
	config.OutputTypes = []string{"json"}
	require.NoError(t, New().Build(context.Background(), config))

	data, err := os.ReadFile(filepath.Join(config.OutputDir, "openapi.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \""), string(data[:20]))
}

func TestGen_Swagger2(t *testing.T) {
	config := catalogConfig(t)
	config.Format = FormatSwagger2
	config.OutputTypes = []string{"json"}
	config.InstanceName = "admin"

	require.NoError(t, New().Build(context.Background(), config))

	doc := readJSON(t, filepath.Join(config.OutputDir, "admin_swagger.json"))
	assert.Equal(t, document.SwaggerVersion, doc["swagger"])
	definitions := doc["definitions"].(map[string]any)
	order := definitions["Order"].(map[string]any)
	props := order["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"$ref": "#/definitions/Color"}, props["color"])
}

func TestGen_GoSources(t *testing.T) {
	// Arrange
	config := &Config{
		Patterns:    []string{"./testdata/shop"},
		OutputDir:   t.TempDir(),
		OutputTypes: []string{"json"},
		Version:     "2.0.0",
		Overrides:   map[string]string{"shop.Money": "string"},
	}

	// Act
	err := New().Build(context.Background(), config)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Gen", config.Title)

	doc := readJSON(t, filepath.Join(config.OutputDir, "openapi.json"))
	s := schemas(t, doc)
	assert.Contains(t, s, "Order")
	assert.Contains(t, s, "Line")
	assert.Contains(t, s, "Status")
	assert.NotContains(t, s, "Money")

	order := s["Order"].(map[string]any)
	assert.Equal(t, []any{"id"}, order["required"])
	props := order["properties"].(map[string]any)
	assert.Equal(t, "string", props["amount"].(map[string]any)["type"])
	assert.Equal(t, "date-time", props["created"].(map[string]any)["format"])

	line := s["Line"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, 1.0, line["quantity"].(map[string]any)["minimum"])
	assert.NotContains(t, line["price"].(map[string]any), "maximum")
	assert.Equal(t, 3.0, line["sku"].(map[string]any)["minLength"])

	status := s["Status"].(map[string]any)
	assert.Equal(t, []any{"open", "paid"}, status["enum"])
}

func TestGen_SelectedTypes(t *testing.T) {
	config := catalogConfig(t)
	config.Types = []string{"shop.Article"}

	require.NoError(t, New().Build(context.Background(), config))

	s := schemas(t, readJSON(t, filepath.Join(config.OutputDir, "openapi.json")))
	assert.Equal(t, []string{"Article"}, keys(s))
}

func TestGen_UnknownType(t *testing.T) {
	config := catalogConfig(t)
	config.Types = []string{"shop.Missing"}

	err := New().Build(context.Background(), config)

	assert.True(t, errors.Is(err, orchestrator.ErrUnknownType))
}

func TestGen_InvalidDocumentIsNotWritten(t *testing.T) {
	config := catalogConfig(t)
	config.Version = ""

	err := New().Build(context.Background(), config)

	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrInvalidDocument))
	_, statErr := os.Stat(filepath.Join(config.OutputDir, "openapi.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGen_UnsupportedFormat(t *testing.T) {
	config := catalogConfig(t)
	config.Format = "raml"

	assert.EqualError(t, New().Build(context.Background(), config), `unsupported format "raml"`)
}

func TestGen_SearchDirIsNotExist(t *testing.T) {
	config := &Config{SearchDir: "../isNotExistDir", OutputDir: t.TempDir()}

	assert.EqualError(t, New().Build(context.Background(), config), "dir: ../isNotExistDir does not exist")
}

func TestGen_SpecificOutputTypes(t *testing.T) {
	config := catalogConfig(t)
	config.OutputTypes = []string{"json", "unknownType"}

	require.NoError(t, New().Build(context.Background(), config))

	tt := []struct {
		expectedFile string
		shouldExist  bool
	}{
		{filepath.Join(config.OutputDir, "openapi.json"), true},
		{filepath.Join(config.OutputDir, "openapi.yaml"), false},
	}
	for _, tc := range tt {
		_, err := os.Stat(tc.expectedFile)
		if tc.shouldExist {
			assert.NoError(t, err)
		} else {
			assert.True(t, os.IsNotExist(err))
		}
	}
}

func TestGen_jsonIndent(t *testing.T) {
	gen := New()
	gen.jsonIndent = func(data interface{}) ([]byte, error) {
		return nil, errors.New("fail")
	}

	assert.Error(t, gen.Build(context.Background(), catalogConfig(t)))
}

func TestGen_jsonToYAML(t *testing.T) {
	config := catalogConfig(t)

	gen := New()
	gen.jsonToYAML = func(data []byte) ([]byte, error) {
		return nil, errors.New("fail")
	}
	assert.Error(t, gen.Build(context.Background(), config))

	_, err := os.Stat(filepath.Join(config.OutputDir, "openapi.json"))
	require.NoError(t, err)
}

func TestGen_Debugger(t *testing.T) {
	var buf bytes.Buffer
	config := catalogConfig(t)
	config.Debugger = log.New(&buf, "", log.LstdFlags)

	assert.True(t, buf.Len() == 0)
	assert.NoError(t, New().Build(context.Background(), config))
	assert.Contains(t, buf.String(), "Orchestrator: Resolving 3 root types")
}

func TestGen_ConfigFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	configFile := filepath.Join(dir, "core-schema.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
title: From File
version: 3.1.0
format: openapi3
propertyStrategy: snakecase
types: [shop.Order]
responses:
  OrderResponse:
    type: shop.Order
    description: An order
requestBodies:
  NewArticle:
    type: shop.Article
    required: true
`), 0o600))

	config := &Config{
		CatalogFile: catalogFile,
		ConfigFile:  configFile,
		OutputDir:   dir,
		OutputTypes: []string{"json"},
		Title:       "From Flags",
	}

	// Act
	err := New().Build(context.Background(), config)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "From Flags", config.Title)
	assert.Equal(t, "3.1.0", config.Version)
	assert.Equal(t, "snakecase", config.PropNamingStrategy)

	doc := readJSON(t, filepath.Join(dir, "openapi.json"))
	info := doc["info"].(map[string]any)
	assert.Equal(t, "From Flags", info["title"])

	components := doc["components"].(map[string]any)
	responses := components["responses"].(map[string]any)
	resp := responses["OrderResponse"].(map[string]any)
	assert.Equal(t, "An order", resp["description"])
	bodies := components["requestBodies"].(map[string]any)
	assert.Equal(t, true, bodies["NewArticle"].(map[string]any)["required"])
	assert.Contains(t, schemas(t, doc), "Article")
}

func TestGen_ConfigFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		config := catalogConfig(t)
		config.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

		err := New().Build(context.Background(), config)

		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := parseConfigFile(strings.NewReader("titel: typo\n"))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		fc, err := parseConfigFile(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, &fileConfig{}, fc)
	})
}

func TestGen_parseOverrides(t *testing.T) {
	testCases := []struct {
		Name          string
		Data          string
		Expected      map[string]string
		ExpectedError error
	}{
		{
			Name: "replace",
			Data: `replace github.com/foo/bar baz`,
			Expected: map[string]string{
				"github.com/foo/bar": "baz",
			},
		},
		{
			Name: "skip",
			Data: `skip github.com/foo/bar`,
			Expected: map[string]string{
				"github.com/foo/bar": "",
			},
		},
		{
			Name: "generic-simple",
			Data: `replace types.Field[string] string`,
			Expected: map[string]string{
				"types.Field[string]": "string",
			},
		},
		{
			Name: "generic-double",
			Data: `replace types.Field[string,string] string`,
			Expected: map[string]string{
				"types.Field[string,string]": "string",
			},
		},
		{
			Name: "comment",
			Data: `// this is a comment
			replace foo bar`,
			Expected: map[string]string{
				"foo": "bar",
			},
		},
		{
			Name: "ignore whitespace",
			Data: `

			replace foo bar`,
			Expected: map[string]string{
				"foo": "bar",
			},
		},
		{
			Name:          "unknown directive",
			Data:          `foo`,
			ExpectedError: fmt.Errorf("could not parse override: 'foo'"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			overrides, err := parseOverrides(strings.NewReader(tc.Data))
			assert.Equal(t, tc.Expected, overrides)
			assert.Equal(t, tc.ExpectedError, err)
		})
	}
}

func TestGen_TypeOverridesFile(t *testing.T) {
	customPath := "/foo/bar/baz"

	tmp, err := os.CreateTemp(t.TempDir(), "")
	require.NoError(t, err)
	_, err = tmp.WriteString("skip shop.Article\n")
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	opener := func(want string, err error) func(string) (*os.File, error) {
		return func(path string) (*os.File, error) {
			assert.Equal(t, want, path)
			if err != nil {
				return nil, err
			}
			return os.Open(tmp.Name())
		}
	}

	t.Run("Default file is missing", func(t *testing.T) {
		open = opener(DefaultOverridesFile, os.ErrNotExist)
		defer func() {
			open = os.Open
		}()

		config := catalogConfig(t)
		config.OverridesFile = DefaultOverridesFile
		assert.NoError(t, New().Build(context.Background(), config))
	})

	t.Run("Default file is present", func(t *testing.T) {
		open = opener(DefaultOverridesFile, nil)
		defer func() {
			open = os.Open
		}()

		config := catalogConfig(t)
		config.OverridesFile = DefaultOverridesFile
		require.NoError(t, New().Build(context.Background(), config))

		s := schemas(t, readJSON(t, filepath.Join(config.OutputDir, "openapi.json")))
		assert.NotContains(t, s, "Article")
	})

	t.Run("Different file is missing", func(t *testing.T) {
		open = opener(customPath, os.ErrNotExist)
		defer func() {
			open = os.Open
		}()

		config := catalogConfig(t)
		config.OverridesFile = customPath
		err := New().Build(context.Background(), config)
		assert.EqualError(t, err, "could not open overrides file: /foo/bar/baz: file does not exist")
	})
}

func TestSanitizeSchema(t *testing.T) {
	// Arrange
	inf, nan, finite := math.Inf(1), math.NaN(), 5.0
	price := schema.PrimitiveSchema(domain.NUMBER)
	price.Maximum = &inf
	price.Minimum = &finite
	price.Default = nan
	price.Example = 2.5
	items := schema.PrimitiveSchema(domain.NUMBER)
	items.Minimum = &nan

	line := schema.ObjectSchema()
	line.Properties.Set("price", schema.Inline(price))
	line.Properties.Set("history", schema.Inline(schema.ArraySchema(schema.Inline(items))))

	reg := component.NewRegistry()
	require.NoError(t, reg.RegisterSchema("Line", line, "shop.Line"))

	// Act
	sanitizeRegistry(reg)

	// Assert
	got, _ := reg.Schema("Line")
	p, _ := got.Properties.Get("price")
	assert.Nil(t, p.Value.Maximum)
	assert.Equal(t, 5.0, *p.Value.Minimum)
	assert.Nil(t, p.Value.Default)
	assert.Equal(t, 2.5, p.Value.Example)
	h, _ := got.Properties.Get("history")
	assert.Nil(t, h.Value.Items.Value.Minimum)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
