package jsonv

// Proxy is a write cursor bound to one slot of a container: a member name of
// an Object or a position of an Array. The slot need not exist yet.
//
// Descending with At materializes a missing slot as an empty Object in its
// parent before the descent, so chains such as
//
//	o.At("a").At("b").At("c").Set(42)
//
// create every intermediate level left to right, each immediately visible
// through every handle of o. A failure along a chain is carried by the
// returned Proxy and reported by its terminal operation.
//
// An array cursor past the end appends on write. The appended element sits at
// the end of the array, so a cursor created past the end should not be reused
// after its first write.
type Proxy struct {
	obj   *Object
	arr   *Array
	name  string
	index int
	err   error
}

func failed(err error) Proxy {
	return Proxy{err: err}
}

// Err returns the error carried along the chain, if any.
func (p Proxy) Err() error {
	return p.err
}

func (p Proxy) lookup() (Value, bool) {
	switch {
	case p.obj != nil:
		return p.obj.Lookup(p.name)
	case p.arr != nil:
		if p.index >= 0 && p.index < p.arr.Len() {
			return p.arr.items[p.index], true
		}
	}
	return Value{}, false
}

func (p Proxy) store(v Value) {
	switch {
	case p.obj != nil:
		p.obj.Set(p.name, v)
	case p.arr != nil:
		if p.index >= 0 && p.index < p.arr.Len() {
			p.arr.items[p.index] = v
			return
		}
		p.arr.Push(v)
	}
}

func (p Proxy) missing() error {
	if p.obj != nil {
		return notFoundName(p.name)
	}
	return notFoundIndex(p.index, p.arr.Len())
}

// object returns the Object held by the slot, storing a new one when the
// slot is missing or unset.
func (p Proxy) object() (*Object, error) {
	if p.err != nil {
		return nil, p.err
	}
	if cur, ok := p.lookup(); ok && cur.IsSet() {
		return cur.AsObject()
	}
	o := NewObject()
	p.store(ObjectValue(o))
	return o, nil
}

// array returns the Array held by the slot. With vivify it stores a new
// one when the slot is missing or unset.
func (p Proxy) array(vivify bool) (*Array, error) {
	if p.err != nil {
		return nil, p.err
	}
	cur, ok := p.lookup()
	if ok && cur.IsSet() {
		return cur.AsArray()
	}
	if !vivify {
		return nil, &NullAccessError{To: KindArray}
	}
	a := NewArray()
	p.store(ArrayValue(a))
	return a, nil
}

// At descends into the member name of the Object held by the slot.
func (p Proxy) At(name string) Proxy {
	o, err := p.object()
	if err != nil {
		return failed(err)
	}
	return o.At(name)
}

// Index descends into position i of the Array held by the slot. The slot
// must already hold an Array.
func (p Proxy) Index(i int) Proxy {
	a, err := p.array(false)
	if err != nil {
		return failed(err)
	}
	return a.At(i)
}

func (p Proxy) indexVivify(i int) Proxy {
	a, err := p.array(true)
	if err != nil {
		return failed(err)
	}
	return a.At(i)
}

// Set writes x into the slot, overwriting it or appending a new member or
// element. x is converted with ValueOf.
func (p Proxy) Set(x any) error {
	if p.err != nil {
		return p.err
	}
	v, err := ValueOf(x)
	if err != nil {
		return err
	}
	p.store(v)
	return nil
}

// Append pushes x onto the Array held by the slot, creating the Array when
// the slot is missing or unset.
func (p Proxy) Append(x any) error {
	a, err := p.array(true)
	if err != nil {
		return err
	}
	v, err := ValueOf(x)
	if err != nil {
		return err
	}
	a.Push(v)
	return nil
}

// Add adds n to the Integer held by the slot and writes the sum back. A
// missing slot narrows like an unset Value.
func (p Proxy) Add(n int64) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	v, ok := p.lookup()
	if !ok {
		return 0, &NullAccessError{To: KindInteger}
	}
	i, err := v.AsInteger()
	if err != nil {
		return 0, err
	}
	i += n
	p.store(Integer(i))
	return i, nil
}

// Increment adds one to the Integer held by the slot.
func (p Proxy) Increment() (int64, error) {
	return p.Add(1)
}

// Value reads the slot.
func (p Proxy) Value() (Value, error) {
	if p.err != nil {
		return Value{}, p.err
	}
	v, ok := p.lookup()
	if !ok {
		return Value{}, p.missing()
	}
	return v, nil
}

// Exists reports whether the slot is present.
func (p Proxy) Exists() bool {
	if p.err != nil {
		return false
	}
	_, ok := p.lookup()
	return ok
}

// Has reports whether the slot holds an Object with a member name.
func (p Proxy) Has(name string) bool {
	v, err := p.Value()
	if err != nil {
		return false
	}
	o, err := v.AsObject()
	return err == nil && o.Has(name)
}

// Len returns the length of the container held by the slot, 0 otherwise.
func (p Proxy) Len() int {
	v, err := p.Value()
	if err != nil {
		return 0
	}
	return v.Len()
}

// Erase removes the member name from the Object held by the slot.
func (p Proxy) Erase(name string) bool {
	v, err := p.Value()
	if err != nil {
		return false
	}
	o, err := v.AsObject()
	return err == nil && o.Erase(name)
}

// EraseAt removes position i from the container held by the slot.
func (p Proxy) EraseAt(i int) bool {
	v, err := p.Value()
	if err != nil {
		return false
	}
	switch v.Kind() {
	case KindArray:
		return v.arrVal.EraseAt(i)
	case KindObject:
		return v.objVal.EraseAt(i)
	default:
		return false
	}
}
