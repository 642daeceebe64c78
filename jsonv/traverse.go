package jsonv

// Visit tells a traversal whether to descend into what was just visited.
type Visit int

const (
	// Continue descends into the visited value.
	Continue Visit = iota
	// StopBranch skips the visited value's contents. Siblings are still visited.
	StopBranch
)

// Walk calls fn for every member at every depth, depth first, parent before
// children. Array elements are searched for members but are not members
// themselves.
func Walk(v Value, fn func(NameValuePair) Visit) {
	switch v.kind {
	case KindObject:
		for _, p := range v.objVal.Pairs() {
			if fn(p) == Continue {
				Walk(p.Value, fn)
			}
		}
	case KindArray:
		for _, e := range v.arrVal.Values() {
			Walk(e, fn)
		}
	}
}

// ForEachRecursive calls fn for every member at every depth.
func ForEachRecursive(v Value, fn func(NameValuePair)) {
	Walk(v, func(p NameValuePair) Visit {
		fn(p)
		return Continue
	})
}

// WalkObjects calls fn for every object in v, v itself included, parent
// before children. StopBranch skips the objects nested inside the one
// just visited.
func WalkObjects(v Value, fn func(*Object) Visit) {
	switch v.kind {
	case KindObject:
		if fn(v.objVal) == StopBranch {
			return
		}
		for _, p := range v.objVal.Pairs() {
			WalkObjects(p.Value, fn)
		}
	case KindArray:
		for _, e := range v.arrVal.Values() {
			WalkObjects(e, fn)
		}
	}
}

// FindRecursive returns the first member matching pred, in Walk order,
// wrapped in a single-member object. It returns an empty object when
// nothing matches.
func FindRecursive(v Value, pred func(NameValuePair) bool) *Object {
	var found *NameValuePair
	Walk(v, func(p NameValuePair) Visit {
		if found != nil {
			return StopBranch
		}
		if pred(p) {
			found = &p
			return StopBranch
		}
		return Continue
	})

	if found == nil {
		return NewObject()
	}
	return NewObject(*found)
}
