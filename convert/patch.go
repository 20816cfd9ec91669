package convert

import (
	"fmt"

	cordar "github.com/cordar-format/cordar-go"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 JSON patch to n and returns the result. n is
// not modified.
func Patch(n *cordar.Node, patch []byte) (*cordar.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("convert: decoding patch: %w", err)
	}
	doc, err := ToJSON(n)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("convert: applying patch: %w", err)
	}
	return FromJSON(out)
}

// MergePatch applies an RFC 7396 JSON merge patch to n and returns the
// result. n is not modified.
func MergePatch(n *cordar.Node, patch []byte) (*cordar.Node, error) {
	doc, err := ToJSON(n)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("convert: applying merge patch: %w", err)
	}
	return FromJSON(out)
}
