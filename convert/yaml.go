package convert

import (
	"fmt"

	cordar "github.com/cordar-format/cordar-go"

	"github.com/goccy/go-yaml"
)

// FromYAML converts a YAML document.
func FromYAML(data []byte) (*cordar.Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("convert: yaml: %w", err)
	}
	return cordar.FromValue(v)
}

// ToYAML converts n to a YAML document.
func ToYAML(n *cordar.Node) ([]byte, error) {
	data, err := yaml.Marshal(n.Interface())
	if err != nil {
		return nil, fmt.Errorf("convert: yaml: %w", err)
	}
	return data, nil
}
