package jsonv

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValue_narrow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		value        Value
		to           Kind
		wantMismatch *TypeMismatchError
		wantNull     bool
	}{
		{name: "integer as integer", value: Integer(1), to: KindInteger},
		{name: "boolean as boolean", value: Boolean(true), to: KindBoolean},
		{name: "number as number", value: Number(1.5), to: KindNumber},
		{name: "null as null", value: Null(), to: KindNull},
		{name: "string as string", value: String("x"), to: KindString},
		{name: "object as object", value: ObjectValue(nil), to: KindObject},
		{name: "array as array", value: ArrayValue(nil), to: KindArray},
		{
			name:         "integer is not a number",
			value:        Integer(1),
			to:           KindNumber,
			wantMismatch: &TypeMismatchError{From: KindInteger, To: KindNumber},
		},
		{
			name:         "number is not an integer",
			value:        Number(1),
			to:           KindInteger,
			wantMismatch: &TypeMismatchError{From: KindNumber, To: KindInteger},
		},
		{
			name:         "null is not a string",
			value:        Null(),
			to:           KindString,
			wantMismatch: &TypeMismatchError{From: KindNull, To: KindString},
		},
		{name: "unset value", value: Value{}, to: KindObject, wantNull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			switch tt.to {
			case KindInteger:
				_, err = tt.value.AsInteger()
			case KindBoolean:
				_, err = tt.value.AsBoolean()
			case KindNumber:
				_, err = tt.value.AsNumber()
			case KindNull:
				err = tt.value.AsNull()
			case KindString:
				_, err = tt.value.AsString()
			case KindObject:
				_, err = tt.value.AsObject()
			case KindArray:
				_, err = tt.value.AsArray()
			}

			switch {
			case tt.wantMismatch != nil:
				var mismatch *TypeMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("expected TypeMismatchError, got %v", err)
				}
				if diff := cmp.Diff(tt.wantMismatch, mismatch); diff != "" {
					t.Errorf("error mismatch (-want +got):\n%s", diff)
				}
			case tt.wantNull:
				var nullAccess *NullAccessError
				if !errors.As(err, &nullAccess) {
					t.Fatalf("expected NullAccessError, got %v", err)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestTypeMismatchError_Error(t *testing.T) {
	t.Parallel()

	_, err := String("x").AsInteger()
	if err == nil {
		t.Fatal("expected error but got nil")
	}

	want := "jsonv: can't convert item of type String to Integer"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "same integer", a: Integer(1), b: Integer(1), want: true},
		{name: "different integer", a: Integer(1), b: Integer(2)},
		{name: "integer and number", a: Integer(1), b: Number(1)},
		{name: "nulls", a: Null(), b: Null(), want: true},
		{name: "unset values", a: Value{}, b: Value{}, want: true},
		{name: "unset and null", a: Value{}, b: Null()},
		{name: "strings", a: String("a"), b: String("a"), want: true},
		{
			name: "nested objects",
			a:    MustParse(`{"a":{"b":[1,2]}}`),
			b:    MustParse(`{"a":{"b":[1,2]}}`),
			want: true,
		},
		{
			name: "member order matters",
			a:    MustParse(`{"a":1,"b":2}`),
			b:    MustParse(`{"b":2,"a":1}`),
		},
		{
			name: "array length",
			a:    MustParse(`[1,2]`),
			b:    MustParse(`[1,2,3]`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("reverse Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Less(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    Value
		want    bool
		reverse bool
	}{
		{name: "integers", a: Integer(1), b: Integer(2), want: true},
		{name: "numbers", a: Number(-1.5), b: Number(0), want: true},
		{name: "strings", a: String("abc"), b: String("abd"), want: true},
		{name: "array heads", a: MustParse(`[1,9]`), b: MustParse(`[2]`), want: true},
		{name: "empty array first", a: MustParse(`[]`), b: MustParse(`[0]`), want: true},
		{name: "empty arrays", a: MustParse(`[]`), b: MustParse(`[]`)},
		{name: "objects are unordered", a: MustParse(`{"a":1}`), b: MustParse(`{"b":2}`)},
		{name: "booleans are unordered", a: Boolean(false), b: Boolean(true)},
		{name: "mixed kinds", a: Integer(1), b: Number(2)},
		{name: "nulls", a: Null(), b: Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
			if tt.b.Less(tt.a) {
				t.Error("reverse Less() = true, want false")
			}
		})
	}
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{name: "nil", in: nil, want: "null"},
		{name: "int", in: 3, want: "3"},
		{name: "int8", in: int8(-3), want: "-3"},
		{name: "uint32", in: uint32(7), want: "7"},
		{name: "float32", in: float32(0.5), want: "0.5"},
		{name: "float64", in: 2.0, want: "2.0"},
		{name: "bool", in: true, want: "true"},
		{name: "string", in: `a"b`, want: `"a\"b"`},
		{name: "pair", in: Pair("k", Integer(1)), want: `{"k":1}`},
		{name: "any slice", in: []any{1, "x", nil, []any{false}}, want: `[1,"x",null,[false]]`},
		{name: "value slice", in: []Value{Integer(1)}, want: `[1]`},
		{name: "uint64 overflow", in: uint64(math.MaxUint64), wantErr: true},
		{name: "unsupported", in: struct{}{}, wantErr: true},
		{name: "unsupported element", in: []any{map[string]int{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueOf(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, v.String()); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueOf_sharesContainers(t *testing.T) {
	t.Parallel()

	o := NewObject()
	v, err := ValueOf(o)
	if err != nil {
		t.Fatal(err)
	}

	o.Set("x", Integer(1))

	if got := v.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	got := []string{
		KindUnset.String(), KindInteger.String(), KindBoolean.String(), KindNumber.String(),
		KindNull.String(), KindString.String(), KindObject.String(), KindArray.String(),
	}
	want := []string{"unset", "Integer", "Boolean", "Number", "Null", "String", "Object", "Array"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kind names mismatch (-want +got):\n%s", diff)
	}
}
