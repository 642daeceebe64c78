package jsonv

import (
	"iter"
	"strings"
)

// Array is an ordered sequence of values. Like Object, a *Array is a handle
// shared by all of its copies.
type Array struct {
	items []Value
}

// NewArray creates an array holding the given values in order.
func NewArray(values ...Value) *Array {
	a := &Array{items: make([]Value, 0, len(values))}
	a.items = append(a.items, values...)
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// Empty reports whether the array has no elements.
func (a *Array) Empty() bool {
	return a.Len() == 0
}

// Get returns the element at position i.
func (a *Array) Get(i int) (Value, error) {
	if i < 0 || i >= a.Len() {
		return Value{}, notFoundIndex(i, a.Len())
	}
	return a.items[i], nil
}

// At returns a write cursor for position i. Writing at or past the end
// appends.
func (a *Array) At(i int) Proxy {
	if a == nil {
		return Proxy{err: &NullAccessError{To: KindArray}}
	}
	return Proxy{arr: a, index: i}
}

// Push appends values.
func (a *Array) Push(values ...Value) *Array {
	a.items = append(a.items, values...)
	return a
}

// Append appends every element of other.
func (a *Array) Append(other *Array) *Array {
	if other == nil {
		return a
	}
	// copy first: other may be a itself
	items := append([]Value(nil), other.items...)
	a.items = append(a.items, items...)
	return a
}

// Insert places v before position i. i == Len appends.
func (a *Array) Insert(i int, v Value) error {
	if i < 0 || i > a.Len() {
		return notFoundIndex(i, a.Len())
	}
	a.items = append(a.items, Value{})
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = v
	return nil
}

// EraseAt removes the element at position i.
func (a *Array) EraseAt(i int) bool {
	if i < 0 || i >= a.Len() {
		return false
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	return true
}

// EraseIf removes every element matching pred and returns how many were removed.
func (a *Array) EraseIf(pred func(Value) bool) int {
	if a == nil {
		return 0
	}
	kept := a.items[:0]
	for _, v := range a.items {
		if !pred(v) {
			kept = append(kept, v)
		}
	}
	n := len(a.items) - len(kept)
	clear(a.items[len(kept):])
	a.items = kept
	return n
}

// EraseValue removes the first element equal to v.
func (a *Array) EraseValue(v Value) bool {
	for i := range a.Values() {
		if a.items[i].Equal(v) {
			return a.EraseAt(i)
		}
	}
	return false
}

// EraseNamedObject removes the first element that is an object whose
// "name" member is the String name.
func (a *Array) EraseNamedObject(name string) bool {
	for i, v := range a.Values() {
		n, err := v.Get("name")
		if err != nil {
			continue
		}
		if s, err := n.AsString(); err == nil && s == name {
			return a.EraseAt(i)
		}
	}
	return false
}

// Clear removes every element.
func (a *Array) Clear() {
	if a == nil {
		return
	}
	clear(a.items)
	a.items = a.items[:0]
}

// Values returns the elements. The slice shares storage with a.
func (a *Array) Values() []Value {
	if a == nil {
		return nil
	}
	return a.items
}

// All iterates elements in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range a.Values() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Contains reports whether an element equal to v exists.
func (a *Array) Contains(v Value) bool {
	for _, e := range a.Values() {
		if e.Equal(v) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy by serializing a and scanning the text back.
func (a *Array) Clone() (*Array, error) {
	v, err := Parse(a.String())
	if err != nil {
		return nil, err
	}
	return v.AsArray()
}

// Equal reports whether both arrays hold equal elements in the same order.
func (a *Array) Equal(other *Array) bool {
	if a.Len() != other.Len() {
		return false
	}
	for i := range a.Values() {
		if !a.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// String returns the compact serialization.
func (a *Array) String() string {
	var sb strings.Builder
	writeArray(&sb, a)
	return sb.String()
}
