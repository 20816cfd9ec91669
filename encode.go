package cordar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

type encodeOpts struct {
	indent   string
	escaping Escaping
	colors   *Colors
}

type EncodeOption func(*encodeOpts)

// EncodeIndent sets the string written once per nesting level. The default
// is three spaces.
func EncodeIndent(indent string) EncodeOption {
	return func(o *encodeOpts) { o.indent = indent }
}

// EncodeEscaping selects how keys and values are escaped. The default is
// [Backslash].
func EncodeEscaping(e Escaping) EncodeOption {
	return func(o *encodeOpts) { o.escaping = e }
}

// EncodeColors styles the output for a terminal. Coloured output is not
// meant to be parsed again.
func EncodeColors(c *Colors) EncodeOption {
	return func(o *encodeOpts) { o.colors = c }
}

// Colors holds the functions used to style each part of a document.
type Colors struct {
	Key   func(...any) string
	Value func(...any) string
	Sep   func(...any) string
	Brace func(...any) string
}

// NewColors returns the default terminal colours.
func NewColors() *Colors {
	return &Colors{
		Key:   color.RGB(196, 96, 16).SprintFunc(),
		Value: color.RGB(8, 196, 16).SprintFunc(),
		Sep:   color.RGB(74, 92, 138).SprintFunc(),
		Brace: color.RGB(255, 0, 196).SprintFunc(),
	}
}

const defaultIndent = "   "

type encoder struct {
	buf  bytes.Buffer
	opts encodeOpts
}

func (e *encoder) write(style func(...any) string, s string) {
	if e.opts.colors != nil && style != nil {
		s = style(s)
	}
	e.buf.WriteString(s)
}

func (e *encoder) indent(depth int) {
	e.buf.WriteString(strings.Repeat(e.opts.indent, depth))
}

func (e *encoder) node(n *Node, depth int, needsIndent bool) {
	var c Colors
	if e.opts.colors != nil {
		c = *e.opts.colors
	}
	esc := e.opts.escaping

	if n.text != "" {
		if needsIndent {
			e.indent(depth)
		}
		e.write(c.Value, esc.Escape(n.text))
		e.buf.WriteByte('\n')
	}

	for _, k := range n.keys() {
		// an empty key cannot be written
		if k == "" {
			continue
		}
		child := n.fields[k]
		e.indent(depth)
		e.write(c.Key, esc.Escape(k))
		e.write(c.Sep, ": ")
		if child.text == "" {
			e.buf.WriteByte('\n')
		}
		e.node(child, depth, false)
	}

	if n.hasArray() {
		for _, elem := range n.elems {
			e.indent(depth)
			e.write(c.Brace, "{")
			e.buf.WriteByte('\n')
			e.node(elem, depth+1, true)
			e.indent(depth)
			e.write(c.Brace, "}")
			e.buf.WriteByte('\n')
		}
	}
}

// Format returns n as a Cordar document.
func Format(n *Node, opts ...EncodeOption) []byte {
	e := &encoder{opts: encodeOpts{indent: defaultIndent, escaping: Backslash}}
	for _, opt := range opts {
		opt(&e.opts)
	}
	if e.opts.escaping == nil {
		e.opts.escaping = Backslash
	}
	e.node(n, 0, true)
	return e.buf.Bytes()
}

// Encode writes n to w as a Cordar document.
func Encode(w io.Writer, n *Node, opts ...EncodeOption) error {
	_, err := w.Write(Format(n, opts...))
	return err
}

// WriteTo implements [io.WriterTo].
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	written, err := w.Write(Format(n))
	return int64(written), err
}

// MarshalText implements [encoding.TextMarshaler].
func (n *Node) MarshalText() ([]byte, error) {
	return Format(n), nil
}

// SaveFile writes n to the named file. The document is written to a
// temporary file next to it first, so the named file is either replaced
// completely or not touched.
func SaveFile(path string, n *Node, opts ...EncodeOption) error {
	mode := fs.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("cordar: save: %w", &fs.PathError{Op: "save", Path: path, Err: errors.New("is a directory")})
		}
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cordar: save: %w", err)
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cordar: save: %w", err)
	}

	if _, err := f.Write(Format(n, opts...)); err != nil {
		return fail(err)
	}
	if err := f.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cordar: save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cordar: save: %w", err)
	}
	return nil
}
