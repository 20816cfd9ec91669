package cordar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	cordar "github.com/cordar-format/cordar-go"
)

func TestImplicitCreation(t *testing.T) {
	n := cordar.New()
	child := n.Get("x")
	require.Equal(t, 0, child.Size())
	require.Equal(t, cordar.Null, child.Kind())
	require.Same(t, child, n.Get("x"))
	require.Equal(t, 1, n.Size())

	_, ok := n.Child("y")
	require.False(t, ok)
	require.Equal(t, 1, n.Size(), "Child must not create")
}

func TestIndexGrows(t *testing.T) {
	n := cordar.New()
	n.Index(5)
	require.Equal(t, 6, n.Len())
	require.Equal(t, cordar.Array, n.Kind())
	for i := range 5 {
		elem, ok := n.Element(i)
		require.True(t, ok)
		require.Equal(t, cordar.Null, elem.Kind())
	}
	_, ok := n.Element(6)
	require.False(t, ok)

	require.Panics(t, func() { n.Index(-1) })
}

func TestIndexKeepsFields(t *testing.T) {
	n := cordar.New()
	n.SetProperty("a", "1")
	n.SetProperty("b", "2")

	n.Index(1).SetValue("second")

	require.Equal(t, 2, n.Len())
	first, ok := n.Element(0)
	require.True(t, ok)
	require.Equal(t, "1", first.Property("a"))
	require.Equal(t, "2", first.Property("b"))
	// the fields now live in element 0 and are still reachable by key
	require.Equal(t, "1", n.Property("a"))

	for key := range n.Fields() {
		_, isDirect := first.Child(key)
		require.True(t, isDirect)
	}

	n.Clear()
	require.Equal(t, cordar.Null, n.Kind())
	require.Equal(t, 0, n.Len())
}

func TestCategoryFieldsLiveInFirstElement(t *testing.T) {
	n := cordar.New()
	n.Get("address").Get("street").SetValue("Main St")

	address := n.Get("address")
	require.Equal(t, 1, address.Len())
	require.Equal(t, cordar.Array, address.Kind())
	elem, _ := address.Element(0)
	require.Equal(t, "Main St", elem.Property("street"))
}

func TestSetValueAndProperty(t *testing.T) {
	n := cordar.New()
	n.SetValue("root text")
	n.SetProperty("port", "80")

	require.True(t, n.Is("root text"))
	require.Equal(t, "80", n.Property("port"))
	require.Equal(t, "", n.Property("missing"))
	_, ok := n.Child("missing")
	require.False(t, ok, "Property must not create")

	n.SetProperty("port", "8080")
	require.Equal(t, "8080", n.Get("port").Value())
	require.Equal(t, cordar.Record, n.Kind())
}

func TestPropertyAt(t *testing.T) {
	n := cordar.New()
	n.SetProperty("b", "2")
	n.SetProperty("a", "1")

	key, value, ok := n.PropertyAt(0)
	require.True(t, ok)
	require.Equal(t, "a", key)
	require.Equal(t, "1", value.Value())

	key, _, ok = n.PropertyAt(1)
	require.True(t, ok)
	require.Equal(t, "b", key)

	_, _, ok = n.PropertyAt(2)
	require.False(t, ok)
	_, _, ok = n.PropertyAt(-1)
	require.False(t, ok)

	_, _, ok = cordar.New().PropertyAt(0)
	require.False(t, ok)
}

func TestSetNodeCopies(t *testing.T) {
	src := cordar.New()
	src.SetProperty("host", "a")

	n := cordar.New()
	n.SetNode("server", src)
	src.SetProperty("host", "b")

	require.Equal(t, "a", n.Get("server").Property("host"))
	require.Equal(t, "b", src.Property("host"))
}

func TestCopy(t *testing.T) {
	n := cordar.New()
	n.Get("db").SetProperty("host", "x")
	n.SetProperty("other", "y")

	c := n.Copy("db")
	require.Equal(t, 1, c.Size())
	require.Equal(t, "x", c.Get("db").Property("host"))

	c.Get("db").SetProperty("host", "changed")
	require.Equal(t, "x", n.Get("db").Property("host"))
}

func TestDelete(t *testing.T) {
	n, err := cordar.Parse([]byte("name: Alice\naddress:\n{\n   street: Main St\n}\n"))
	require.NoError(t, err)
	require.Equal(t, 2, n.Size())

	require.True(t, n.Delete("name"))
	require.Equal(t, 1, n.Size())
	require.False(t, n.Delete("name"))

	address := n.Get("address")
	require.True(t, address.Delete("street"))
	require.Equal(t, 0, address.Size())
}

func TestDeleteIndex(t *testing.T) {
	n := cordar.New()
	for i, v := range []string{"a", "b", "c"} {
		n.Index(i).SetValue(v)
	}

	require.True(t, n.DeleteIndex(1))
	require.Equal(t, 2, n.Len())
	second, _ := n.Element(1)
	require.Equal(t, "c", second.Value())

	require.False(t, n.DeleteIndex(2))
	require.False(t, n.DeleteIndex(-1))
}

func TestIterators(t *testing.T) {
	n := cordar.New()
	n.SetProperty("z", "26")
	n.SetProperty("a", "1")

	var keys []string
	for k := range n.Fields() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"a", "z"}, keys)

	list := n.Get("list")
	list.Index(0).SetValue("x")
	list.Index(1).SetValue("y")
	var values []string
	for _, e := range list.Elements() {
		values = append(values, e.Value())
	}
	require.Equal(t, []string{"x", "y"}, values)
}

func TestEqual(t *testing.T) {
	a := cordar.New()
	a.SetProperty("k", "v")
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.SetProperty("k", "w")
	require.False(t, a.Equal(b))

	// a single empty element is not content
	empty := cordar.New()
	padded := cordar.New()
	padded.Index(0)
	require.True(t, empty.Equal(padded))
	require.True(t, empty.Equal(nil))

	var nilNode *cordar.Node
	require.True(t, nilNode.Equal(cordar.New()))
	require.Nil(t, nilNode.Clone())
}

func TestInterface(t *testing.T) {
	n := cordar.New()
	require.Nil(t, n.Interface())

	n.SetValue("top")
	require.Equal(t, "top", n.Interface())

	n.SetProperty("a", "1")
	n.Get("list").Index(1).SetValue("second")
	require.Equal(t, map[string]any{
		"":     "top",
		"a":    "1",
		"list": []any{nil, "second"},
	}, n.Interface())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Record", cordar.Record.String())
	require.Panics(t, func() { _ = cordar.Kind(42).String() })
}
