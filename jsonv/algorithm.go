package jsonv

import (
	"slices"
	"strings"
)

// Normalise sorts the members of o by name, recursively, and returns o.
// Sorting is stable, so duplicate names keep their relative order. With
// sortArrays, array elements are sorted too using Value.Less; objects
// inside arrays have no order and stay where they are relative to each
// other.
func Normalise(o *Object, sortArrays bool) *Object {
	for _, p := range o.Pairs() {
		NormaliseValue(p.Value, sortArrays)
	}
	slices.SortStableFunc(o.Pairs(), func(l, r NameValuePair) int {
		return strings.Compare(l.name, r.name)
	})
	return o
}

// NormaliseValue normalises the container held by v in place and returns v.
func NormaliseValue(v Value, sortArrays bool) Value {
	switch v.kind {
	case KindObject:
		Normalise(v.objVal, sortArrays)
	case KindArray:
		for _, e := range v.arrVal.items {
			NormaliseValue(e, sortArrays)
		}
		if sortArrays {
			slices.SortStableFunc(v.arrVal.items, compare)
		}
	}
	return v
}

// HaveSameItems reports whether a and b have the same member names in the
// same order. Values are not compared.
func HaveSameItems(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Pairs() {
		if a.pairs[i].name != b.pairs[i].name {
			return false
		}
	}
	return true
}

// ArrayIntersection returns the elements of a that have an equal element
// in b, in the order of a.
func ArrayIntersection(a, b *Array) *Array {
	result := NewArray()
	for _, v := range a.Values() {
		if b.Contains(v) {
			result.Push(v)
		}
	}
	return result
}

// ArrayDifference returns the elements of a that have no equal element in
// b, in the order of a.
func ArrayDifference(a, b *Array) *Array {
	result := NewArray()
	for _, v := range a.Values() {
		if !b.Contains(v) {
			result.Push(v)
		}
	}
	return result
}

// SetDifference reports what a adds to b.
//
// Members missing from b are kept as they are. Objects present in both are
// diffed recursively and arrays present in both keep only the elements b
// lacks; either is kept only when its difference is not empty. A container
// whose counterpart in b is of another kind is kept as it is. Scalars
// present in both are dropped whatever their values.
func SetDifference(a, b *Object) *Object {
	result := NewObject()
	for _, p := range a.Pairs() {
		other, ok := b.Lookup(p.name)
		switch {
		case !ok:
			result.Set(p.name, p.Value)
		case p.IsObject():
			if !other.IsObject() {
				result.Set(p.name, p.Value)
				continue
			}
			if d := SetDifference(p.Value.objVal, other.objVal); !d.Empty() {
				result.Set(p.name, ObjectValue(d))
			}
		case p.IsArray():
			if !other.IsArray() {
				result.Set(p.name, p.Value)
				continue
			}
			if d := ArrayDifference(p.Value.arrVal, other.arrVal); !d.Empty() {
				result.Set(p.name, ArrayValue(d))
			}
		}
	}
	return result
}
