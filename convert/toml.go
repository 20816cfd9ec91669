package convert

import (
	"bytes"
	"errors"
	"fmt"

	cordar "github.com/cordar-format/cordar-go"

	"github.com/BurntSushi/toml"
)

// ErrNotRecord is returned when a tree whose root is not a record is
// converted to a format that needs one.
var ErrNotRecord = errors.New("document root is not a record")

// FromTOML converts a TOML document. Dates and times keep their TOML
// spelling.
func FromTOML(data []byte) (*cordar.Node, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("convert: toml: %w", err)
	}
	return cordar.FromValue(v)
}

// ToTOML converts n to a TOML document. TOML has no null, so empty nodes
// are left out of tables and written as "" inside arrays.
func ToTOML(n *cordar.Node) ([]byte, error) {
	var m map[string]any
	switch v := n.Interface().(type) {
	case map[string]any:
		m = v
	case nil:
		m = map[string]any{}
	default:
		return nil, fmt.Errorf("convert: toml: %w", ErrNotRecord)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(dropNulls(m)); err != nil {
		return nil, fmt.Errorf("convert: toml: %w", err)
	}
	return buf.Bytes(), nil
}

func dropNulls(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			if e != nil {
				out[k] = dropNulls(e)
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			if e == nil {
				out[i] = ""
			} else {
				out[i] = dropNulls(e)
			}
		}
		return out
	}
	return v
}
