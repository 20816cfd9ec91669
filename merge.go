package cordar

import "strconv"

// Merge merges a copy of other into n.
//
// Fields of other are added to n, merging recursively where n already has
// a field of the same name; elements of other are merged with n's element
// at the same index or appended. Merging fields into a node that holds an
// array, or elements into a node that holds fields, is a shape conflict:
// without overwrite Merge returns a [*ConflictError] and n is left
// unchanged, with overwrite the existing array or fields are dropped.
// With overwrite, non-empty scalar text in other replaces the text in n.
func (n *Node) Merge(other *Node, overwrite bool) error {
	if other == nil {
		return nil
	}
	if !overwrite {
		if err := n.checkMerge(other, ""); err != nil {
			return err
		}
	}
	n.merge(other, overwrite)
	return nil
}

// checkMerge finds the first conflict merge(o, false) would hit.
func (n *Node) checkMerge(o *Node, path string) error {
	if len(o.fields) > 0 {
		if n.hasArray() {
			return &ConflictError{Path: path, Want: Record, Have: Array}
		}
		if r := n.record(false); r != nil {
			for _, k := range o.keys() {
				if c, ok := r.fields[k]; ok {
					if err := c.checkMerge(o.fields[k], joinKey(path, k)); err != nil {
						return err
					}
				}
			}
		}
	}
	if o.hasArray() {
		if len(n.fields) > 0 {
			return &ConflictError{Path: path, Want: Array, Have: Record}
		}
		for i, e := range o.elems {
			if i >= len(n.elems) {
				break
			}
			if err := n.elems[i].checkMerge(e, joinIndex(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *Node) merge(o *Node, overwrite bool) {
	if len(o.fields) > 0 {
		if n.hasArray() {
			n.elems = nil
		}
		r := n.record(true)
		if r.fields == nil {
			r.fields = make(map[string]*Node, len(o.fields))
		}
		for _, k := range o.keys() {
			if c, ok := r.fields[k]; ok {
				c.merge(o.fields[k], overwrite)
				continue
			}
			c := o.fields[k].Clone()
			c.pushFields()
			c.category = true
			r.fields[k] = c
		}
	}
	if o.hasArray() {
		if len(n.fields) > 0 {
			n.fields = nil
		}
		for i, e := range o.elems {
			if i < len(n.elems) {
				n.elems[i].merge(e, overwrite)
			} else {
				n.elems = append(n.elems, e.Clone())
			}
		}
	}
	if overwrite && o.text != "" {
		n.text = o.text
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func joinIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
