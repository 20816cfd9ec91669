package cordar

import (
	"fmt"
	"strconv"
	"strings"
)

// A Step is one step of a path through a tree: a key, or an element index
// when IsIndex is set.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Step) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return strings.NewReplacer(`\`, `\\`, ".", `\.`, "[", `\[`).Replace(s.Key)
}

// FormatPath is the inverse of [ParsePath].
func FormatPath(steps []Step) string {
	var b strings.Builder
	for i, s := range steps {
		if i > 0 && !s.IsIndex {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePath parses a path such as "server.ports[1].name". Keys are
// separated by '.', element indexes are written in brackets, and a
// backslash makes the next character part of the key. The empty path
// refers to the root.
func ParsePath(path string) ([]Step, error) {
	var (
		steps []Step
		key   strings.Builder
		open  bool
	)
	flush := func() {
		if open {
			steps = append(steps, Step{Key: key.String()})
			key.Reset()
			open = false
		}
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '\\':
			if i+1 == len(path) {
				return nil, fmt.Errorf("path %q: trailing backslash", path)
			}
			i++
			key.WriteByte(path[i])
			open = true
		case '.':
			if !open && (i == 0 || path[i-1] != ']') {
				return nil, fmt.Errorf("path %q: empty key at offset %d", path, i)
			}
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("path %q: unclosed [", path)
			}
			idx, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("path %q: invalid index %q", path, path[i+1:i+end])
			}
			steps = append(steps, Step{Index: idx, IsIndex: true})
			i += end
		default:
			key.WriteByte(c)
			open = true
		}
	}
	if !open && strings.HasSuffix(path, ".") {
		return nil, fmt.Errorf("path %q: empty key at end", path)
	}
	flush()
	return steps, nil
}

// Lookup follows steps from n without creating anything.
func (n *Node) Lookup(steps []Step) (*Node, bool) {
	for _, s := range steps {
		var ok bool
		if s.IsIndex {
			n, ok = n.Element(s.Index)
		} else {
			n, ok = n.Child(s.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return n, true
}

// Ensure follows steps from n with [Node.Get] and [Node.Index], creating
// whatever is missing.
func (n *Node) Ensure(steps []Step) *Node {
	for _, s := range steps {
		if s.IsIndex {
			n = n.Index(s.Index)
		} else {
			n = n.Get(s.Key)
		}
	}
	return n
}

// Remove deletes the node at the end of steps and reports whether it
// existed. The root cannot be removed.
func (n *Node) Remove(steps []Step) bool {
	if len(steps) == 0 {
		return false
	}
	parent, ok := n.Lookup(steps[:len(steps)-1])
	if !ok {
		return false
	}
	last := steps[len(steps)-1]
	if last.IsIndex {
		return parent.DeleteIndex(last.Index)
	}
	return parent.Delete(last.Key)
}
