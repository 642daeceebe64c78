package jsonv

import (
	"iter"
	"strings"
)

// Object is an ordered sequence of members. Duplicate names are tolerated;
// lookup by name resolves to the first match.
//
// A *Object is a handle. Every copy of the pointer, and every Value holding
// it, sees the same members. Use Clone for an independent copy.
type Object struct {
	pairs []NameValuePair
}

// NewObject creates an object holding the given members in order.
func NewObject(pairs ...NameValuePair) *Object {
	o := &Object{pairs: make([]NameValuePair, 0, len(pairs))}
	o.pairs = append(o.pairs, pairs...)
	return o
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.pairs)
}

// Empty reports whether the object has no members.
func (o *Object) Empty() bool {
	return o.Len() == 0
}

func (o *Object) index(name string) int {
	if o == nil {
		return -1
	}
	for i := range o.pairs {
		if o.pairs[i].name == name {
			return i
		}
	}
	return -1
}

// Has reports whether a member named name exists.
func (o *Object) Has(name string) bool {
	return o.index(name) >= 0
}

// Get returns the first member named name.
func (o *Object) Get(name string) (Value, error) {
	i := o.index(name)
	if i < 0 {
		return Value{}, notFoundName(name)
	}
	return o.pairs[i].Value, nil
}

// Lookup is like Get but reports a miss with a boolean.
func (o *Object) Lookup(name string) (Value, bool) {
	i := o.index(name)
	if i < 0 {
		return Value{}, false
	}
	return o.pairs[i].Value, true
}

// Add appends a member without checking for an existing name.
func (o *Object) Add(name string, v Value) *Object {
	o.pairs = append(o.pairs, NameValuePair{name: name, Value: v})
	return o
}

// AddPair appends a member.
func (o *Object) AddPair(p NameValuePair) *Object {
	o.pairs = append(o.pairs, p)
	return o
}

// Set overwrites the first member named name, or appends one.
func (o *Object) Set(name string, v Value) *Object {
	if i := o.index(name); i >= 0 {
		o.pairs[i].Value = v
		return o
	}
	return o.Add(name, v)
}

// At returns a write cursor for the member named name. It never fails,
// the member is created by the first write through the cursor.
func (o *Object) At(name string) Proxy {
	if o == nil {
		return Proxy{err: &NullAccessError{To: KindObject}}
	}
	return Proxy{obj: o, name: name}
}

// Erase removes the first member named name.
func (o *Object) Erase(name string) bool {
	return o.EraseAt(o.index(name))
}

// EraseAt removes the member at position i.
func (o *Object) EraseAt(i int) bool {
	if i < 0 || i >= o.Len() {
		return false
	}
	o.pairs = append(o.pairs[:i], o.pairs[i+1:]...)
	return true
}

// Pairs returns the members. The slice shares storage with o: member
// values assigned through it are visible in o.
func (o *Object) Pairs() []NameValuePair {
	if o == nil {
		return nil
	}
	return o.pairs
}

// Names returns member names in order.
func (o *Object) Names() []string {
	names := make([]string, 0, o.Len())
	for _, p := range o.Pairs() {
		names = append(names, p.name)
	}
	return names
}

// All iterates members in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, p := range o.Pairs() {
			if !yield(p.name, p.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy by serializing o and scanning the text back.
func (o *Object) Clone() (*Object, error) {
	return ParseObject(o.String())
}

// Equal reports whether both objects hold equal members in the same order.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i := range o.Pairs() {
		l, r := &o.pairs[i], &other.pairs[i]
		if l.name != r.name || !l.Value.Equal(r.Value) {
			return false
		}
	}
	return true
}

// String returns the compact serialization.
func (o *Object) String() string {
	var sb strings.Builder
	writeObject(&sb, o)
	return sb.String()
}
