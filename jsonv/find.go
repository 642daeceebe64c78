package jsonv

import "strings"

// CollectByName returns the values of every member named name, at any depth.
func CollectByName(v Value, name string) *Array {
	matches := NewArray()
	ForEachRecursive(v, func(p NameValuePair) {
		if p.name == name {
			matches.Push(p.Value)
		}
	})
	return matches
}

// CollectOutermostByName returns the value of name from every object that
// has it, without looking inside such objects.
func CollectOutermostByName(v Value, name string) *Array {
	matches := NewArray()
	WalkObjects(v, func(o *Object) Visit {
		if m, ok := o.Lookup(name); ok {
			matches.Push(m)
			return StopBranch
		}
		return Continue
	})
	return matches
}

// ObjectsContaining returns every object that has a member name, without
// looking inside such objects.
func ObjectsContaining(v Value, name string) *Array {
	matches := NewArray()
	WalkObjects(v, func(o *Object) Visit {
		if o.Has(name) {
			matches.Push(ObjectValue(o))
			return StopBranch
		}
		return Continue
	})
	return matches
}

// AllObjectsContaining returns every object at any depth that has a member name.
func AllObjectsContaining(v Value, name string) *Array {
	matches := NewArray()
	WalkObjects(v, func(o *Object) Visit {
		if o.Has(name) {
			matches.Push(ObjectValue(o))
		}
		return Continue
	})
	return matches
}

func hasItem(o *Object, name string, item Value) bool {
	m, ok := o.Lookup(name)
	return ok && m.Equal(item)
}

// ObjectsWithItem returns every object at any depth whose member name equals item.
func ObjectsWithItem(v Value, name string, item Value) *Array {
	matches := NewArray()
	WalkObjects(v, func(o *Object) Visit {
		if hasItem(o, name, item) {
			matches.Push(ObjectValue(o))
		}
		return Continue
	})
	return matches
}

// FindObjectWithItem returns the first object whose member name equals item.
func FindObjectWithItem(v Value, name string, item Value) (*Object, bool) {
	var found *Object
	WalkObjects(v, func(o *Object) Visit {
		if found != nil {
			return StopBranch
		}
		if hasItem(o, name, item) {
			found = o
			return StopBranch
		}
		return Continue
	})
	return found, found != nil
}

// FindByName returns the first member named name as a single-member object,
// or an empty object.
func FindByName(v Value, name string) *Object {
	return FindRecursive(v, func(p NameValuePair) bool {
		return p.name == name
	})
}

// FindStringContaining returns the first String member named name whose text
// contains substr, as a single-member object, or an empty object.
func FindStringContaining(v Value, name, substr string) *Object {
	return FindRecursive(v, func(p NameValuePair) bool {
		if p.name != name {
			return false
		}
		s, err := p.Value.AsString()
		return err == nil && strings.Contains(s, substr)
	})
}
