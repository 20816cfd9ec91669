// Package convert moves Cordar trees to and from other data formats.
//
// Conversions go through the plain Go values of [cordar.Node.Interface]
// and [cordar.FromValue]: records become objects, arrays become lists and
// scalars become strings. Categories are arrays of records in Cordar, so
//
//	address:
//	{
//	   street: Main St
//	}
//
// becomes {"address": [{"street": "Main St"}]} in JSON.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	cordar "github.com/cordar-format/cordar-go"
)

// Format is a document format.
type Format int

const (
	Cordar Format = iota
	JSON
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case Cordar:
		return "cordar"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a format name or its one letter abbreviation.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "cordar", "c", "cdr":
		return Cordar, nil
	case "json", "j":
		return JSON, nil
	case "yaml", "yml", "y":
		return YAML, nil
	case "toml", "t":
		return TOML, nil
	}
	return Cordar, fmt.Errorf("unknown format %q", s)
}

// FormatFromPath guesses a format from a file extension. Anything it does
// not recognise is Cordar.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Cordar
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return Cordar
	}
	return f
}

// Decode reads a document in format f. opts only apply to Cordar.
func Decode(data []byte, f Format, opts ...cordar.ParseOption) (*cordar.Node, error) {
	switch f {
	case Cordar:
		return cordar.Parse(data, opts...)
	case JSON:
		return FromJSON(data)
	case YAML:
		return FromYAML(data)
	case TOML:
		return FromTOML(data)
	}
	return nil, fmt.Errorf("unsupported format %v", f)
}

// Encode writes n in format f. opts only apply to Cordar.
func Encode(n *cordar.Node, f Format, opts ...cordar.EncodeOption) ([]byte, error) {
	switch f {
	case Cordar:
		return cordar.Format(n, opts...), nil
	case JSON:
		return ToJSON(n)
	case YAML:
		return ToYAML(n)
	case TOML:
		return ToTOML(n)
	}
	return nil, fmt.Errorf("unsupported format %v", f)
}
