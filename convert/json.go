package convert

import (
	"bytes"
	"encoding/json"
	"fmt"

	cordar "github.com/cordar-format/cordar-go"
)

// FromJSON converts a JSON document. Numbers keep their original text.
func FromJSON(data []byte) (*cordar.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("convert: json: %w", err)
	}
	return cordar.FromValue(v)
}

// ToJSON converts n to an indented JSON document.
func ToJSON(n *cordar.Node) ([]byte, error) {
	data, err := json.MarshalIndent(n.Interface(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("convert: json: %w", err)
	}
	return append(data, '\n'), nil
}
