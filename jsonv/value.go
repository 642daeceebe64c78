package jsonv

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindUnset Kind = iota // zero Value, distinct from KindNull
	KindInteger
	KindBoolean
	KindNumber
	KindNull
	KindString
	KindObject
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindInteger:
		return "Integer"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	default:
		return "unknown"
	}
}

// Value is a tagged union over Integer, Boolean, Number, Null, String,
// Object and Array. The zero Value is unset.
//
// Object and Array payloads are handles: copying a Value that holds one
// shares the container with the copy.
type Value struct {
	kind Kind

	intVal    int64
	boolVal   bool
	numberVal float64
	strVal    string

	objVal *Object
	arrVal *Array
}

// ============================================================
// Constructors
// ============================================================

// Integer creates an Integer value.
func Integer(v int64) Value {
	return Value{kind: KindInteger, intVal: v}
}

// Boolean creates a Boolean value.
func Boolean(v bool) Value {
	return Value{kind: KindBoolean, boolVal: v}
}

// Number creates a Number value.
func Number(v float64) Value {
	return Value{kind: KindNumber, numberVal: v}
}

// Null creates a Null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String creates a String value.
func String(v string) Value {
	return Value{kind: KindString, strVal: v}
}

// ObjectValue wraps an object handle. A nil handle becomes a new empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, objVal: o}
}

// ArrayValue wraps an array handle. A nil handle becomes a new empty array.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = NewArray()
	}
	return Value{kind: KindArray, arrVal: a}
}

// ValueOf converts common Go shapes to a Value.
//
// Supported: nil, bool, string, all integer kinds, float32, float64,
// Value, Proxy, *Object, *Array, NameValuePair, []Value and []any.
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case Proxy:
		return x.Value()
	case *Object:
		return ObjectValue(x), nil
	case *Array:
		return ArrayValue(x), nil
	case NameValuePair:
		return ObjectValue(NewObject(x)), nil
	case bool:
		return Boolean(x), nil
	case string:
		return String(x), nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return unsignedValue(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return unsignedValue(x)
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case []Value:
		return ArrayValue(NewArray(x...)), nil
	case []any:
		arr := &Array{items: make([]Value, 0, len(x))}
		for i, elem := range x {
			v, err := ValueOf(elem)
			if err != nil {
				return Value{}, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr.items = append(arr.items, v)
		}
		return ArrayValue(arr), nil
	default:
		return Value{}, fmt.Errorf("jsonv: unsupported type %T", x)
	}
}

func unsignedValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("jsonv: %d overflows Integer", u)
	}
	return Integer(int64(u)), nil
}

// MustValueOf is like ValueOf but panics on unsupported types.
func MustValueOf(x any) Value {
	v, err := ValueOf(x)
	if err != nil {
		panic(err)
	}
	return v
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsSet reports whether v holds any variant.
func (v Value) IsSet() bool {
	return v.kind != KindUnset
}

// Is reports whether v holds exactly the given kind.
func (v Value) Is(k Kind) bool {
	return v.kind == k
}

// IsNull reports whether v holds the Null variant. An unset value is not Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsObject reports whether v holds an Object.
func (v Value) IsObject() bool {
	return v.kind == KindObject
}

// IsArray reports whether v holds an Array.
func (v Value) IsArray() bool {
	return v.kind == KindArray
}

func (v Value) narrow(to Kind) error {
	if v.kind == KindUnset {
		return &NullAccessError{To: to}
	}
	if v.kind != to {
		return &TypeMismatchError{From: v.kind, To: to}
	}
	return nil
}

// AsInteger returns the Integer payload.
func (v Value) AsInteger() (int64, error) {
	if err := v.narrow(KindInteger); err != nil {
		return 0, err
	}
	return v.intVal, nil
}

// AsBoolean returns the Boolean payload.
func (v Value) AsBoolean() (bool, error) {
	if err := v.narrow(KindBoolean); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

// AsNumber returns the Number payload. Integers are not coerced.
func (v Value) AsNumber() (float64, error) {
	if err := v.narrow(KindNumber); err != nil {
		return 0, err
	}
	return v.numberVal, nil
}

// AsString returns the String payload.
func (v Value) AsString() (string, error) {
	if err := v.narrow(KindString); err != nil {
		return "", err
	}
	return v.strVal, nil
}

// AsNull succeeds only for the Null variant.
func (v Value) AsNull() error {
	return v.narrow(KindNull)
}

// AsObject returns the Object handle.
func (v Value) AsObject() (*Object, error) {
	if err := v.narrow(KindObject); err != nil {
		return nil, err
	}
	return v.objVal, nil
}

// AsArray returns the Array handle.
func (v Value) AsArray() (*Array, error) {
	if err := v.narrow(KindArray); err != nil {
		return nil, err
	}
	return v.arrVal, nil
}

// Get reads a member of an Object value.
func (v Value) Get(name string) (Value, error) {
	o, err := v.AsObject()
	if err != nil {
		return Value{}, err
	}
	return o.Get(name)
}

// Index reads an element of an Array value.
func (v Value) Index(i int) (Value, error) {
	a, err := v.AsArray()
	if err != nil {
		return Value{}, err
	}
	return a.Get(i)
}

// Len returns the number of members or elements, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return v.objVal.Len()
	case KindArray:
		return v.arrVal.Len()
	default:
		return 0
	}
}

// ============================================================
// Equality and ordering
// ============================================================

// Equal reports structural equality. All Null values are equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindUnset, KindNull:
		return true
	case KindInteger:
		return v.intVal == other.intVal
	case KindBoolean:
		return v.boolVal == other.boolVal
	case KindNumber:
		return v.numberVal == other.numberVal
	case KindString:
		return v.strVal == other.strVal
	case KindObject:
		return v.objVal.Equal(other.objVal)
	case KindArray:
		return v.arrVal.Equal(other.arrVal)
	default:
		return false
	}
}

// Less orders same-kind Integer, Number and String values, and arrays by
// their first element. Objects are unordered: Less is false both ways.
func (v Value) Less(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindInteger:
		return v.intVal < other.intVal
	case KindNumber:
		return v.numberVal < other.numberVal
	case KindString:
		return v.strVal < other.strVal
	case KindArray:
		ln, rn := v.arrVal.Len(), other.arrVal.Len()
		if ln == 0 || rn == 0 {
			return ln == 0 && rn > 0
		}
		return v.arrVal.items[0].Less(other.arrVal.items[0])
	default:
		return false
	}
}

// compare extends Less to a total preorder for slices.SortStableFunc.
// Values of different kinds order by Kind. Objects, Booleans and Nulls of
// one kind compare equal, so a stable sort keeps their relative order.
func compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case KindInteger:
		return cmp.Compare(a.intVal, b.intVal)
	case KindNumber:
		return cmp.Compare(a.numberVal, b.numberVal)
	case KindString:
		return strings.Compare(a.strVal, b.strVal)
	case KindArray:
		ln, rn := a.arrVal.Len(), b.arrVal.Len()
		if ln == 0 || rn == 0 {
			return cmp.Compare(min(ln, 1), min(rn, 1))
		}
		return compare(a.arrVal.items[0], b.arrVal.items[0])
	default:
		return 0
	}
}

// ============================================================
// NameValuePair
// ============================================================

// NameValuePair is an object member. The name is fixed at construction,
// the value may be replaced in place.
type NameValuePair struct {
	name  string
	Value Value
}

// Pair creates a member.
func Pair(name string, value Value) NameValuePair {
	return NameValuePair{name: name, Value: value}
}

// Name returns the member name.
func (p NameValuePair) Name() string {
	return p.name
}

// Is reports whether the member value holds the given kind.
func (p NameValuePair) Is(k Kind) bool {
	return p.Value.Is(k)
}

// IsObject reports whether the member value is an Object.
func (p NameValuePair) IsObject() bool {
	return p.Value.IsObject()
}

// IsArray reports whether the member value is an Array.
func (p NameValuePair) IsArray() bool {
	return p.Value.IsArray()
}
