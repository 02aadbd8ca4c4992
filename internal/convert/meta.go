package convert

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Meta is the coordinate and dimension naming for converted variables,
// loadable from a YAML file:
//
//	coords:
//	  school: [A, B, C]
//	dims:
//	  theta: [school]
type Meta struct {
	Coords map[string][]string `yaml:"coords"`
	Dims   map[string][]string `yaml:"dims"`
}

// LoadMeta reads a Meta from a YAML file.
func LoadMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata file %s: %w", path, err)
	}
	return &meta, nil
}
