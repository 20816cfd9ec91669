package cordar

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
)

type parseOpts struct {
	escaping Escaping
	strict   bool
	logger   *slog.Logger
}

type ParseOption func(*parseOpts)

// WithEscaping selects how keys and values are unescaped. The default is
// [Backslash].
func WithEscaping(e Escaping) ParseOption {
	return func(o *parseOpts) { o.escaping = e }
}

// Strict makes parsing fail with a [*SyntaxError] on the first malformed
// line instead of skipping it.
func Strict() ParseOption {
	return func(o *parseOpts) { o.strict = true }
}

// WithLogger sets the logger malformed lines are reported to at debug
// level when parsing is not [Strict]. The default is [slog.Default].
func WithLogger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.logger = l }
}

func newParseOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if o.escaping == nil {
		o.escaping = Backslash
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

type parser struct {
	next     func() (int, Token, bool)
	opts     *parseOpts
	lastLine int
	err      error
}

// absorb reports a malformed line. It returns false when parsing must
// stop.
func (p *parser) absorb(lno int, msg string) bool {
	if p.opts.strict {
		p.err = &SyntaxError{Line: lno, Msg: msg}
		return false
	}
	p.opts.logger.LogAttrs(context.Background(), slog.LevelDebug, "cordar: ignoring malformed line",
		slog.Int("line", lno), slog.String("problem", msg))
	return true
}

func (p *parser) token() (int, Token, bool) {
	lno, token, ok := p.next()
	if ok {
		p.lastLine = lno
	}
	return lno, token, ok
}

// block reads lines into root until a Close or the end of the input, and
// reports whether it stopped at a Close.
//
// Each '{' opens the next element of the node named on the last key line,
// or of root itself if there was none: two blocks in a row after "a:"
// fill a[0] and a[1].
func (p *parser) block(root *Node) bool {
	last := root
	depth := 0
	for {
		lno, token, ok := p.token()
		if !ok {
			return false
		}
		switch token.Kind {
		case Comment:
		case Error:
			if !p.absorb(lno, token.Content) {
				return false
			}
		case Key:
			_, value, _ := p.token()
			child := root.Get(token.Content)
			if child.line == 0 {
				child.line = lno
			}
			if value.Kind == Value {
				child.text = value.Content
			}
			last = child
			depth = 0
		case Open:
			elem := last.Index(depth)
			elem.line = lno
			depth++
			if !p.block(elem) {
				if p.err != nil || !p.absorb(lno, "missing }") {
					return false
				}
			}
		case Close:
			return true
		case Text:
			root.text = token.Content
		default:
			panic(fmt.Errorf("%d: missing case %#v", lno, token))
		}
	}
}

func (p *parser) parse(root *Node) error {
	if p.block(root) {
		// an unmatched '}' ends the document
		p.absorb(p.lastLine, "unexpected }")
	}
	return p.err
}

func (n *Node) load(input string, opts []ParseOption) error {
	next, stop := iter.Pull2(Tokens(input, opts...))
	defer stop()
	p := &parser{next: next, opts: newParseOpts(opts)}
	return p.parse(n)
}

// Parse reads a Cordar document.
//
// Malformed lines are skipped, and an unmatched '}' ends the document,
// unless [Strict] is given.
func Parse(data []byte, opts ...ParseOption) (*Node, error) {
	n := New()
	if err := n.load(string(data), opts); err != nil {
		return nil, err
	}
	return n, nil
}

// Decode reads a Cordar document from r.
func Decode(r io.Reader, opts ...ParseOption) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cordar: read: %w", err)
	}
	return Parse(data, opts...)
}

// Load reads a Cordar document from r into n. Keys that already exist in
// n are reused, as if the document had been written after its contents.
// n is unchanged if an error is returned.
func (n *Node) Load(r io.Reader, opts ...ParseOption) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cordar: read: %w", err)
	}
	tmp := n.Clone()
	if err := tmp.load(string(data), opts); err != nil {
		return err
	}
	*n = *tmp
	return nil
}

// LoadFile reads the Cordar document in the named file.
func LoadFile(path string, opts ...ParseOption) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cordar: load: %w", err)
	}
	defer f.Close()
	return Decode(f, opts...)
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It replaces the
// contents of n with the parsed document.
func (n *Node) UnmarshalText(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	if n.category {
		parsed.pushFields()
		parsed.category = true
	}
	parsed.line = n.line
	*n = *parsed
	return nil
}
