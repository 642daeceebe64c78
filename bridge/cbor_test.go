package bridge

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazrean/jsonagent/jsonv"
)

func TestCBOR_roundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object",
			input: `{"b":[1,-2,2.5,"s",true,null],"a":{}}`,
			want:  `{"a":{},"b":[1,-2,2.5,"s",true,null]}`,
		},
		{name: "whole number stays number", input: `[1.0,3]`, want: `[1.0,3]`},
		{name: "scalar", input: `"text"`, want: `"text"`},
		{name: "empty array", input: `[]`, want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalCBOR(jsonv.MustParse(tt.input))
			if err != nil {
				t.Fatalf("unexpected marshal error: %v", err)
			}

			got, err := UnmarshalCBOR(data)
			if err != nil {
				t.Fatalf("unexpected unmarshal error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalCBOR_deterministic(t *testing.T) {
	t.Parallel()

	a, err := MarshalCBOR(jsonv.MustParse(`{"x":1,"y":[true]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MarshalCBOR(jsonv.MustParse(`{"y":[true],"x":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Errorf("encodings differ: %x != %x", a, b)
	}
}

func TestCBOR_stream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeCBOR(&buf, jsonv.MustParse(`{"k":"v"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := DecodeCBOR(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(`{"k":"v"}`, got.String()); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}

	if _, err := UnmarshalCBOR([]byte{0xff}); err == nil {
		t.Error("expected error for malformed input")
	}
}
