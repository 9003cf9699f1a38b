package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/griffnb/core-schema/internal/domain"
	"gopkg.in/yaml.v3"
)

type fileSpec struct {
	Types []typeSpec `yaml:"types"`
}

type typeSpec struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"`
	Params  []string    `yaml:"params"`
	Extends []string    `yaml:"extends"`
	Doc     string      `yaml:"doc"`
	Values  []string    `yaml:"values"`
	Fields  []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	Doc        string            `yaml:"doc"`
	Static     bool              `yaml:"static"`
	Method     bool              `yaml:"method"`
	Params     int               `yaml:"params"`
	Attributes map[string]string `yaml:"attributes"`
}

var kindsByName = map[string]domain.Kind{
	"object":    domain.KindObject,
	"class":     domain.KindObject,
	"struct":    domain.KindObject,
	"interface": domain.KindInterface,
	"enum":      domain.KindEnum,
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load reads a YAML catalog:
//
//	types:
//	  - name: shop.Order
//	    kind: object
//	    doc: A purchase.
//	    fields:
//	      - name: articles
//	        type: list<shop.Article>
//	        attributes: {required: "true"}
//	  - name: shop.Color
//	    kind: enum
//	    values: [RED, GREEN]
func Load(r io.Reader) (*Catalog, error) {
	var spec fileSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := New()
	for _, ts := range spec.Types {
		kind, ok := kindsByName[ts.Kind]
		if !ok {
			kind = domain.KindObject
			if ts.Kind != "" {
				return nil, fmt.Errorf("type %s: unknown kind %q", ts.Name, ts.Kind)
			}
		}

		decl := Decl{
			Name:    ts.Name,
			Kind:    kind,
			Params:  ts.Params,
			Extends: ts.Extends,
			Values:  ts.Values,
			Doc:     domain.ParseDoc(ts.Doc),
		}
		for _, fs := range ts.Fields {
			decl.Fields = append(decl.Fields, Field{
				Name:       fs.Name,
				Type:       fs.Type,
				Attributes: domain.Attributes(fs.Attributes),
				Doc:        domain.ParseDoc(fs.Doc),
				Static:     fs.Static,
				Accessor:   fs.Method,
				Params:     fs.Params,
			})
		}

		if err := c.Add(decl); err != nil {
			return nil, err
		}
	}
	return c, nil
}
