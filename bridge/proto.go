package bridge

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/mazrean/jsonagent/jsonv"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProtoValue converts v to a protobuf Value. Integers become doubles and
// NaN or infinite Numbers become null, as in the text form.
func ToProtoValue(v jsonv.Value) *structpb.Value {
	switch v.Kind() {
	case jsonv.KindInteger:
		i, _ := v.AsInteger()
		return structpb.NewNumberValue(float64(i))
	case jsonv.KindNumber:
		f, _ := v.AsNumber()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return structpb.NewNullValue()
		}
		return structpb.NewNumberValue(f)
	case jsonv.KindBoolean:
		b, _ := v.AsBoolean()
		return structpb.NewBoolValue(b)
	case jsonv.KindString:
		s, _ := v.AsString()
		return structpb.NewStringValue(s)
	case jsonv.KindObject:
		o, _ := v.AsObject()
		return structpb.NewStructValue(ToStruct(o))
	case jsonv.KindArray:
		a, _ := v.AsArray()
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, a.Len())}
		for _, e := range a.All() {
			list.Values = append(list.Values, ToProtoValue(e))
		}
		return structpb.NewListValue(list)
	default:
		return structpb.NewNullValue()
	}
}

// ToStruct converts o to a protobuf Struct. Duplicate names keep the first
// value.
func ToStruct(o *jsonv.Object) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, o.Len())}
	for name, member := range o.All() {
		if _, ok := s.Fields[name]; !ok {
			s.Fields[name] = ToProtoValue(member)
		}
	}
	return s
}

// FromProtoValue converts a protobuf Value. Integral numbers that fit
// exactly become Integers and Struct fields are sorted by name.
func FromProtoValue(pv *structpb.Value) (jsonv.Value, error) {
	switch k := pv.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return jsonv.Null(), nil
	case *structpb.Value_NumberValue:
		return fromFloat(k.NumberValue), nil
	case *structpb.Value_BoolValue:
		return jsonv.Boolean(k.BoolValue), nil
	case *structpb.Value_StringValue:
		return jsonv.String(k.StringValue), nil
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		names := slices.Sorted(maps.Keys(fields))
		o := jsonv.NewObject()
		for _, name := range names {
			v, err := FromProtoValue(fields[name])
			if err != nil {
				return jsonv.Value{}, fmt.Errorf("struct[%q]: %w", name, err)
			}
			o.Add(name, v)
		}
		return jsonv.ObjectValue(o), nil
	case *structpb.Value_ListValue:
		a := jsonv.NewArray()
		for i, e := range k.ListValue.GetValues() {
			v, err := FromProtoValue(e)
			if err != nil {
				return jsonv.Value{}, fmt.Errorf("list[%d]: %w", i, err)
			}
			a.Push(v)
		}
		return jsonv.ArrayValue(a), nil
	default:
		return jsonv.Value{}, fmt.Errorf("unsupported protobuf value kind %T", k)
	}
}

// MarshalProto encodes v as a binary google.protobuf.Value message.
func MarshalProto(v jsonv.Value) ([]byte, error) {
	b, err := proto.Marshal(ToProtoValue(v))
	if err != nil {
		return nil, fmt.Errorf("marshal proto: %w", err)
	}
	return b, nil
}

// UnmarshalProto decodes a binary google.protobuf.Value message.
func UnmarshalProto(data []byte) (jsonv.Value, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return jsonv.Value{}, fmt.Errorf("unmarshal proto: %w", err)
	}
	return FromProtoValue(&pv)
}
