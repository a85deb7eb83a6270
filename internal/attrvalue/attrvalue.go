// Package attrvalue implements the typed-attribute wire format of key-value stores batch-write APIs.
// Each scalar is tagged with its primitive type: {"S": "text"} for strings, {"N": "42"} for
// numbers (carried as their decimal string) and {"L": [...]} for lists.
package attrvalue

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrWrongType is returned when a value does not carry the requested type tag.
	ErrWrongType = errors.New("attribute value has the wrong type")
	// ErrMissing is returned when an item has no attribute with the requested name.
	ErrMissing = errors.New("attribute is missing")
)

// Value is a single typed attribute. Exactly one of its fields is set.
type Value struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	L []Value `json:"L,omitempty"`
}

// Item is a record made of named typed attributes.
type Item map[string]Value

// S returns a string attribute.
func S(s string) Value {
	return Value{S: &s}
}

// N returns a number attribute.
func N(n int64) Value {
	s := strconv.FormatInt(n, 10)
	return Value{N: &s}
}

// L returns a list attribute holding vs.
func L(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{L: vs}
}

// Strings returns a list attribute of string attributes.
func Strings(ss []string) Value {
	vs := make([]Value, 0, len(ss))
	for _, s := range ss {
		vs = append(vs, S(s))
	}
	return L(vs...)
}

// String returns the string carried by v.
func (v Value) String() (string, error) {
	if v.S == nil {
		return "", fmt.Errorf("%w: want S", ErrWrongType)
	}
	return *v.S, nil
}

// Int returns the integer carried by v.
func (v Value) Int() (int64, error) {
	if v.N == nil {
		return 0, fmt.Errorf("%w: want N", ErrWrongType)
	}
	n, err := strconv.ParseInt(*v.N, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", *v.N, err)
	}
	return n, nil
}

// StringList returns the strings of a list of string attributes.
func (v Value) StringList() ([]string, error) {
	if v.L == nil {
		return nil, fmt.Errorf("%w: want L", ErrWrongType)
	}
	ss := make([]string, 0, len(v.L))
	for i, e := range v.L {
		s, err := e.String()
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		ss = append(ss, s)
	}
	return ss, nil
}

// String returns the string attribute name of the item.
func (it Item) String(name string) (string, error) {
	v, ok := it[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissing, name)
	}
	s, err := v.String()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Int returns the number attribute name of the item.
func (it Item) Int(name string) (int64, error) {
	v, ok := it[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	n, err := v.Int()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// StringList returns the string list attribute name of the item.
func (it Item) StringList(name string) ([]string, error) {
	v, ok := it[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	ss, err := v.StringList()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ss, nil
}
