package cordar

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

var nodeType = reflect.TypeFor[Node]()

func textMarshaler(v reflect.Value) (encoding.TextMarshaler, bool) {
	if !v.CanInterface() || ((v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil()) {
		return nil, false
	}
	if m, ok := v.Interface().(encoding.TextMarshaler); ok {
		return m, true
	}
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(encoding.TextMarshaler); ok {
			return m, true
		}
	}
	return nil, false
}

func marshalKey(v reflect.Value) (string, error) {
	if m, ok := textMarshaler(v); ok {
		text, err := m.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			return marshalKey(v.Elem())
		}
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return base64.RawStdEncoding.EncodeToString(byteSlice(v)), nil
		}
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Bool:
		return fmt.Sprint(v.Interface()), nil
	}
	return "", fmt.Errorf("unsupported map key type: %s", v.Type())
}

func byteSlice(v reflect.Value) []byte {
	b := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(b), v)
	return b
}

// graft replaces n with a copy of src, keeping n a category if it is one.
func (n *Node) graft(src *Node) {
	c := src.Clone()
	if n.category {
		c.pushFields()
		c.category = true
	}
	*n = *c
}

// fieldName returns the key a struct field is stored under, and its tag
// options. ok is false for fields that are skipped.
func fieldName(field reflect.StructField) (name, options string, ok bool) {
	if !field.IsExported() {
		return "", "", false
	}
	tag, found := field.Tag.Lookup("cordar")
	if !found {
		tag, _ = field.Tag.Lookup("json")
	}
	if tag == "-" {
		return "", "", false
	}
	name, options, _ = strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, options, true
}

func marshalValue(n *Node, v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	switch {
	case v.Type() == nodeType:
		src := v.Interface().(Node)
		n.graft(&src)
		return nil
	case v.Kind() == reflect.Pointer && v.Type().Elem() == nodeType:
		if !v.IsNil() {
			n.graft(v.Interface().(*Node))
		}
		return nil
	}

	if m, ok := textMarshaler(v); ok {
		text, err := m.MarshalText()
		if err != nil {
			return err
		}
		n.SetValue(string(text))
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return marshalValue(n, v.Elem())
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			n.SetValue(base64.RawStdEncoding.EncodeToString(byteSlice(v)))
			return nil
		}
		for i := range v.Len() {
			if err := marshalValue(n.Index(i), v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		for _, key := range v.MapKeys() {
			k, err := marshalKey(key)
			if err != nil {
				return err
			}
			target := n
			if k != "" {
				target = n.Get(k)
			}
			if err := marshalValue(target, v.MapIndex(key)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		t := v.Type()
		for i := range t.NumField() {
			name, options, ok := fieldName(t.Field(i))
			if !ok {
				continue
			}
			fv := v.Field(i)
			if strings.Contains(options, "omitempty") && fv.IsZero() {
				continue
			}
			if err := marshalValue(n.Get(name), fv); err != nil {
				return err
			}
		}
		return nil
	case reflect.String:
		n.SetValue(v.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Bool:
		n.SetValue(fmt.Sprint(v.Interface()))
		return nil
	default:
		return fmt.Errorf("unsupported type: %s", v.Type())
	}
}

// FromValue converts a go value to a tree. Structs and maps become
// records, slices and arrays become elements, and everything else becomes
// scalar text.
//
// It returns an error if the value could not be converted (for example if
// it contains a channel or a func).
func FromValue(v any) (*Node, error) {
	n := New()
	if err := marshalValue(n, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return n, nil
}

// Marshal converts a go value to a Cordar document.
//
// Struct fields are named by a `cordar:"name"` tag, then a `json:"name"`
// tag, then the field name; the option "omitempty" skips zero values.
// Types that implement [encoding.TextMarshaler] are written as scalars,
// and byte slices are written in base64.
func Marshal(v any, opts ...EncodeOption) ([]byte, error) {
	n, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	return Format(n, opts...), nil
}

// Unmarshal updates the value v with the data from the Cordar document.
// v should be a non-nil pointer to a struct, slice, map, interface, array.
// Unmarshal acts similarly to json.Unmarshal.
//
// For struct fields, Cordar will first look for the name in a `cordar:"name"` tag,
// then in a `json:"name"` tag, and finally use the snake_case version of the field
// name or the field name itself.
//
// When unmarshalling into an interface, the value is the one returned by
// [Node.Interface].
//
// If the document is invalid, or doesn't match the type of `v`, then an
// error will be returned.
func Unmarshal(data []byte, v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	n, err := Parse(data, Strict())
	if err != nil {
		return err
	}
	return unmarshalValue(n, value.Elem())
}

// Decode stores the contents of n in the value pointed to by v, in the same
// way as [Unmarshal].
func (n *Node) Decode(v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	return unmarshalValue(n, value.Elem())
}

func unmarshalValue(n *Node, v reflect.Value) error {
	if !v.CanSet() {
		panic(fmt.Errorf("cannot set value of type: %v", v.Type()))
	}

	switch {
	case v.Type() == nodeType:
		v.Set(reflect.ValueOf(*n.Clone()))
		return nil
	case v.Kind() == reflect.Pointer && v.Type().Elem() == nodeType:
		v.Set(reflect.ValueOf(n.Clone()))
		return nil
	}

	if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		if err := tu.UnmarshalText([]byte(n.text)); err != nil {
			return fmt.Errorf("%d: %w", n.line, err)
		}
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		return unmarshalStruct(n, v)
	case reflect.Map:
		return unmarshalMap(n, v)
	case reflect.Interface:
		if v.NumMethod() != 0 {
			break
		}
		if x := n.Interface(); x != nil {
			v.Set(reflect.ValueOf(x))
		}
		return nil
	case reflect.Ptr:
		if n.Kind() == Null {
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return unmarshalValue(n, v.Elem())
	case reflect.Array:
		return unmarshalArray(n, v)
	case reflect.Slice:
		return unmarshalSlice(n, v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.Bool,
		reflect.String:
		if n.Kind() == Null {
			return nil
		}
		return setBasicValue(n.line, n.text, v)
	}

	return fmt.Errorf("unsupported type: %v", v.Type())
}

// singleRecord returns the record a struct or map is read from.
func singleRecord(n *Node, t reflect.Type) (*Node, error) {
	if len(n.elems) > 1 {
		return nil, fmt.Errorf("%d: expected a single record for %v, got %d elements", n.line, t, len(n.elems))
	}
	return n.record(false), nil
}

func unmarshalStruct(n *Node, v reflect.Value) error {
	rec, err := singleRecord(n, v.Type())
	if err != nil || rec == nil {
		return err
	}

	t := v.Type()
	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		fieldType := t.Field(i)
		name, _, ok := fieldName(fieldType)
		if !ok {
			continue
		}
		fieldMap[name] = v.Field(i)
		if name == fieldType.Name {
			fieldMap[toSnakeCase(fieldType.Name)] = v.Field(i)
		}
	}

	for _, key := range rec.keys() {
		child := rec.fields[key]
		field, ok := fieldMap[key]
		if !ok {
			return fmt.Errorf("%d: unknown field %s", child.line, key)
		}
		if err := unmarshalValue(child, field); err != nil {
			return err
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

func unmarshalMap(n *Node, v reflect.Value) error {
	rec, err := singleRecord(n, v.Type())
	if err != nil || rec == nil {
		return err
	}

	keyType := v.Type().Key()
	valueType := v.Type().Elem()
	for _, k := range rec.keys() {
		child := rec.fields[k]
		if v.IsNil() {
			v.Set(reflect.MakeMap(v.Type()))
		}
		key := reflect.New(keyType).Elem()
		if err := setBasicValue(child.line, k, key); err != nil {
			return fmt.Errorf("%d: invalid key: %v", child.line, err)
		}
		value := reflect.New(valueType).Elem()
		if err := unmarshalValue(child, value); err != nil {
			return err
		}
		v.SetMapIndex(key, value)
	}
	return nil
}

// items returns the nodes a slice or array is read from. Anything other
// than an array stands for a single element.
func items(n *Node) []*Node {
	switch {
	case n.hasArray():
		return n.elems
	case n.Kind() == Null:
		return nil
	}
	return []*Node{n}
}

func unmarshalSlice(n *Node, v reflect.Value) error {
	elemType := v.Type().Elem()

	if elemType.Kind() == reflect.Uint8 {
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "")
		output, err := base64.RawStdEncoding.DecodeString(r.Replace(n.text))
		if err != nil {
			return fmt.Errorf("%d: %w", n.line, err)
		}
		v.SetBytes(output)
		return nil
	}

	for _, item := range items(n) {
		elem := reflect.New(elemType).Elem()
		if err := unmarshalValue(item, elem); err != nil {
			return err
		}
		v.Set(reflect.Append(v, elem))
	}
	return nil
}

func unmarshalArray(n *Node, v reflect.Value) error {
	for i, item := range items(n) {
		if i >= v.Len() {
			return fmt.Errorf("%d: too many elements, limit %d", item.line, v.Len())
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := unmarshalValue(item, elem); err != nil {
			return err
		}
		v.Index(i).Set(elem)
	}
	return nil
}

func setBasicValue(lno int, s string, v reflect.Value) error {
	if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		if err := tu.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("%d: %w", lno, err)
		}
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		if v.OverflowInt(i) {
			return fmt.Errorf("%d: invalid %s: %v", lno, v.Type(), i)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		if v.OverflowUint(u) {
			return fmt.Errorf("%d: invalid %s: %v", lno, v.Type(), u)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		if v.OverflowFloat(f) {
			return fmt.Errorf("%d: invalid %s: %v", lno, v.Type(), f)
		}
		v.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return err
		}
		if v.OverflowComplex(c) {
			return fmt.Errorf("%d: invalid %s: %v", lno, v.Type(), c)
		}
		v.SetComplex(c)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("%d: unsupported type %s", lno, v.Type())
	}
	return nil
}
