// Package cordar implements Cordar parsing and serializing.
//
// Cordar is a line-oriented text format for loosely structured
// configuration data. A document is a tree of nodes; each node holds a
// scalar value, named fields, or a list of anonymous elements.
//
//	# a basic Cordar document
//	name: Alice
//	address:
//	{
//	   street: Main St
//	   city: Springfield
//	}
//	{
//	   street: Elm St
//	}
//
// A "key: value" line sets a field, a "key:" line opens a category, and
// each "{" ... "}" block that follows fills the next element of that
// category. A line with no ':' sets the value of the enclosing block
// itself. Lines whose first non-blank character is '#' are comments.
// The characters ':', '{' and '}' inside keys and values are escaped, see
// [Escaping].
//
// Navigation never fails: [Node.Get] and [Node.Index] create what they
// do not find, so
//
//	doc := cordar.New()
//	doc.Get("address").Get("street").SetValue("Main St")
//
// builds the first element of the address category above. Trees can be
// merged with [Node.Merge] and converted to and from Go values with
// [Marshal] and [Unmarshal], which work like their [encoding/json]
// counterparts.
package cordar
