package cordar

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Kind is the shape of a [Node].
type Kind int8

const (
	Null Kind = iota
	Scalar
	Record
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Scalar:
		return "Scalar"
	case Record:
		return "Record"
	case Array:
		return "Array"
	default:
		panic("Unknown Kind")
	}
}

// A Node is one element of a Cordar tree. It holds a scalar value, named
// fields, or anonymous elements; a record may also carry its own scalar
// text.
//
// A node reached with [Node.Get] is a category: its fields live in its
// first element, which is created the first time a field is added. This
// is what the text format expresses as
//
//	address:
//	{
//	   street: Main St
//	}
//
// Nodes are not safe for concurrent mutation.
type Node struct {
	text     string
	fields   map[string]*Node
	elems    []*Node
	category bool
	line     int
}

// New returns an empty root node.
func New() *Node {
	return &Node{}
}

// record returns the node that holds n's named fields: n itself, or the
// first element of a category or array. It returns nil when create is
// false and that element does not exist yet.
func (n *Node) record(create bool) *Node {
	for n.category || len(n.elems) > 0 {
		if len(n.elems) == 0 {
			if !create {
				return nil
			}
			n.elems = append(n.elems, &Node{})
		}
		n = n.elems[0]
	}
	return n
}

// hasArray reports whether n holds elements that count as content. A
// single empty element does not.
func (n *Node) hasArray() bool {
	return len(n.elems) > 1 || (len(n.elems) == 1 && n.elems[0].Size() != 0)
}

// pushFields moves n's direct fields into a new first element.
func (n *Node) pushFields() {
	if len(n.fields) == 0 {
		return
	}
	n.elems = append([]*Node{{fields: n.fields}}, n.elems...)
	n.fields = nil
}

func (n *Node) keys() []string {
	return slices.Sorted(maps.Keys(n.fields))
}

// Get returns the child named key, creating an empty one if it does not
// exist. On a category or an array the child is looked up in the first
// element. Get always returns a usable node.
func (n *Node) Get(key string) *Node {
	r := n.record(true)
	if child, ok := r.fields[key]; ok {
		return child
	}
	if r.fields == nil {
		r.fields = make(map[string]*Node)
	}
	child := &Node{category: true}
	r.fields[key] = child
	return child
}

// Index returns element i, growing the element list with empty nodes as
// needed. Named fields held directly by n become element 0, so no data is
// lost; use [Node.Clear] to drop them instead.
//
// Index panics if i is negative.
func (n *Node) Index(i int) *Node {
	if i < 0 {
		panic(fmt.Sprintf("cordar: negative index %d", i))
	}
	n.pushFields()
	for len(n.elems) <= i {
		n.elems = append(n.elems, &Node{})
	}
	return n.elems[i]
}

// Child returns the child named key without creating it.
func (n *Node) Child(key string) (*Node, bool) {
	r := n.record(false)
	if r == nil {
		return nil, false
	}
	child, ok := r.fields[key]
	return child, ok
}

// Element returns element i without creating it.
func (n *Node) Element(i int) (*Node, bool) {
	if i < 0 || i >= len(n.elems) {
		return nil, false
	}
	return n.elems[i], true
}

// SetNode stores a deep copy of v under key, replacing any existing child.
func (n *Node) SetNode(key string, v *Node) {
	c := v.Clone()
	if c == nil {
		c = &Node{}
	}
	c.pushFields()
	c.category = true
	r := n.record(true)
	if r.fields == nil {
		r.fields = make(map[string]*Node)
	}
	r.fields[key] = c
}

// Value returns the scalar text of n, or "" if it has none.
func (n *Node) Value() string {
	return n.text
}

// SetValue sets the scalar text of n. Fields and elements are left alone.
func (n *Node) SetValue(s string) {
	n.text = s
}

// Is reports whether the scalar text of n is s.
func (n *Node) Is(s string) bool {
	return n.text == s
}

// Line returns the 1-based line n was read from, or 0.
func (n *Node) Line() int {
	return n.line
}

// Copy returns a new tree with a single child named key holding a deep
// copy of n.Get(key).
func (n *Node) Copy(key string) *Node {
	out := New()
	out.SetNode(key, n.Get(key))
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{text: n.text, category: n.category, line: n.line}
	if len(n.fields) > 0 {
		c.fields = make(map[string]*Node, len(n.fields))
		for k, v := range n.fields {
			c.fields[k] = v.Clone()
		}
	}
	if len(n.elems) > 0 {
		c.elems = make([]*Node, len(n.elems))
		for i, e := range n.elems {
			c.elems[i] = e.Clone()
		}
	}
	return c
}

// PropertyAt returns the i'th field, in key order, of n's record. ok is
// false unless 0 <= i < the number of fields.
func (n *Node) PropertyAt(i int) (key string, value *Node, ok bool) {
	r := n.record(false)
	if r == nil || i < 0 || i >= len(r.fields) {
		return "", nil, false
	}
	key = r.keys()[i]
	return key, r.fields[key], true
}

// Property returns the scalar text of the field name, or "".
func (n *Node) Property(name string) string {
	if child, ok := n.Child(name); ok {
		return child.text
	}
	return ""
}

// SetProperty sets the scalar text of the field name, creating it if needed.
func (n *Node) SetProperty(name, value string) {
	n.Get(name).SetValue(value)
}

// Size returns the number of fields of n if it has any, else the number
// of elements if it holds an array, else 1 for a scalar and 0 for an empty
// node. Only this level is counted.
func (n *Node) Size() int {
	switch {
	case len(n.fields) > 0:
		return len(n.fields)
	case n.hasArray():
		return len(n.elems)
	case n.text != "":
		return 1
	}
	return 0
}

// Len returns the number of elements of n, counting empty ones.
func (n *Node) Len() int {
	return len(n.elems)
}

func (n *Node) Kind() Kind {
	switch {
	case n.hasArray():
		return Array
	case len(n.fields) > 0:
		return Record
	case n.text != "":
		return Scalar
	}
	return Null
}

// Delete removes the field key from n's record and reports whether it
// was present.
func (n *Node) Delete(key string) bool {
	r := n.record(false)
	if r == nil {
		return false
	}
	if _, ok := r.fields[key]; !ok {
		return false
	}
	delete(r.fields, key)
	return true
}

// DeleteIndex removes element i, shifting later elements down.
func (n *Node) DeleteIndex(i int) bool {
	if i < 0 || i >= len(n.elems) {
		return false
	}
	n.elems = slices.Delete(n.elems, i, i+1)
	return true
}

// Clear drops the text, fields and elements of n.
func (n *Node) Clear() {
	n.text = ""
	n.fields = nil
	n.elems = nil
}

// Fields iterates over the fields of n's record in key order.
func (n *Node) Fields() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		r := n.record(false)
		if r == nil {
			return
		}
		for _, k := range r.keys() {
			if !yield(k, r.fields[k]) {
				return
			}
		}
	}
}

// Elements iterates over the elements of n.
func (n *Node) Elements() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		for i, e := range n.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Equal reports whether n and o have the same text, fields and array
// content. A single empty element counts as no elements.
func (n *Node) Equal(o *Node) bool {
	if n == nil {
		n = &Node{}
	}
	if o == nil {
		o = &Node{}
	}
	if n.text != o.text || len(n.fields) != len(o.fields) {
		return false
	}
	for k, v := range n.fields {
		w, ok := o.fields[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	na, oa := n.hasArray(), o.hasArray()
	if na != oa {
		return false
	}
	if !na {
		return true
	}
	if len(n.elems) != len(o.elems) {
		return false
	}
	for i := range n.elems {
		if !n.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// Interface returns n as plain Go values: a []any for an array, a
// map[string]any for a record (with any attached text under the key ""),
// a string for a scalar and nil for an empty node.
func (n *Node) Interface() any {
	switch {
	case n.hasArray():
		out := make([]any, len(n.elems))
		for i, e := range n.elems {
			out[i] = e.Interface()
		}
		return out
	case len(n.fields) > 0:
		out := make(map[string]any, len(n.fields)+1)
		for k, v := range n.fields {
			out[k] = v.Interface()
		}
		if n.text != "" {
			out[""] = n.text
		}
		return out
	case n.text != "":
		return n.text
	}
	return nil
}
