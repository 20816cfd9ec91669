package cordar

import (
	"errors"
	"fmt"
)

// ErrShapeConflict is wrapped by the errors returned from [Node.Merge]
// when a record would be merged into an array or the other way round.
var ErrShapeConflict = errors.New("shape conflict")

// A ConflictError reports where a merge found a shape conflict.
type ConflictError struct {
	// Path is the dotted path of the conflicting node, "" for the root.
	Path string
	// Want is the shape being merged in, Have the shape already there.
	Want, Have Kind
}

func (e *ConflictError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s: cannot merge %s into %s: %v", path, e.Want, e.Have, ErrShapeConflict)
}

func (e *ConflictError) Unwrap() error {
	return ErrShapeConflict
}

// A SyntaxError is returned by [Strict] parsing for the first malformed
// line in a document.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Msg)
}
