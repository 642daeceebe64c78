// Package bridge converts documents between the jsonv model and other
// encodings: standard JSON, CBOR, YAML and protobuf Struct values.
//
// JSON text output and YAML keep member order. Decoders that go through Go
// maps (JSON, CBOR, protobuf) return members sorted by name.
package bridge

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mazrean/jsonagent/internal/pkg/json"
	"github.com/mazrean/jsonagent/jsonv"
)

// ToAny converts v to plain Go values: map[string]any, []any, int64,
// float64, string, bool and nil. Duplicate member names keep the first value.
func ToAny(v jsonv.Value) any {
	switch v.Kind() {
	case jsonv.KindInteger:
		i, _ := v.AsInteger()
		return i
	case jsonv.KindBoolean:
		b, _ := v.AsBoolean()
		return b
	case jsonv.KindNumber:
		f, _ := v.AsNumber()
		return f
	case jsonv.KindString:
		s, _ := v.AsString()
		return s
	case jsonv.KindObject:
		o, _ := v.AsObject()
		m := make(map[string]any, o.Len())
		for name, member := range o.All() {
			if _, ok := m[name]; !ok {
				m[name] = ToAny(member)
			}
		}
		return m
	case jsonv.KindArray:
		a, _ := v.AsArray()
		s := make([]any, 0, a.Len())
		for _, e := range a.All() {
			s = append(s, ToAny(e))
		}
		return s
	default:
		return nil
	}
}

// FromAny converts decoded Go values to a Value. Map members are sorted by
// name so the result does not depend on map iteration order.
func FromAny(x any) (jsonv.Value, error) {
	switch x := x.(type) {
	case map[string]any:
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		slices.Sort(names)

		o := jsonv.NewObject()
		for _, name := range names {
			v, err := FromAny(x[name])
			if err != nil {
				return jsonv.Value{}, fmt.Errorf("object[%q]: %w", name, err)
			}
			o.Add(name, v)
		}
		return jsonv.ObjectValue(o), nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			name, ok := k.(string)
			if !ok {
				return jsonv.Value{}, fmt.Errorf("unsupported map key type %T", k)
			}
			m[name] = v
		}
		return FromAny(m)
	case []any:
		a := jsonv.NewArray()
		for i, e := range x {
			v, err := FromAny(e)
			if err != nil {
				return jsonv.Value{}, fmt.Errorf("array[%d]: %w", i, err)
			}
			a.Push(v)
		}
		return jsonv.ArrayValue(a), nil
	case json.Number:
		return fromNumberText(string(x))
	case []byte:
		return jsonv.String(string(x)), nil
	default:
		return jsonv.ValueOf(x)
	}
}

// fromNumberText classifies decimal text the way the scanner does.
func fromNumberText(s string) (jsonv.Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return jsonv.Integer(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("parse number %q: %w", s, err)
	}
	return jsonv.Number(f), nil
}

// maxExactInt is the largest magnitude every integer below which a float64
// holds exactly.
const maxExactInt = 1<<53 - 1

// fromFloat turns integral floats that fit exactly into Integers.
func fromFloat(f float64) jsonv.Value {
	if f == math.Trunc(f) && f >= -maxExactInt && f <= maxExactInt {
		return jsonv.Integer(int64(f))
	}
	return jsonv.Number(f)
}
