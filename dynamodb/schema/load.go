package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a descriptor from a YAML or JSON file.
func Load(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("reading schema file: %w", err)
	}
	desc, err := Parse(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if desc.Title == "" {
		desc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// Parse decodes a descriptor. JSON input is accepted since it is valid YAML.
func Parse(data []byte) (Descriptor, error) {
	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

// UnmarshalYAML keeps the declaration order of the properties mapping.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	props := make(Properties, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var prop Property
		if err := value.Decode(&prop); err != nil {
			return fmt.Errorf("property %q: %w", key.Value, err)
		}
		prop.Name = key.Value
		props = append(props, prop)
	}
	*p = props
	return nil
}
