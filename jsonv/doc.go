// Package jsonv is a dynamically typed document model: a JSON-like tree of
// scalars, objects and arrays with a scanner, a compact and a pretty
// serializer, and structural algorithms over the tree.
//
// Containers are handles. Copying a *Object, a *Array or a Value holding
// one shares the container; Clone produces an independent copy through the
// text form.
//
//	o := jsonv.NewObject()
//	if err := o.At("a").At("b").At("c").Set(42); err != nil {
//		return err
//	}
//	fmt.Println(o) // {"a":{"b":{"c":42}}}
//
// A tree is not safe for concurrent mutation. Independent trees may be used
// from different goroutines.
package jsonv
