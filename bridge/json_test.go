package bridge

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazrean/jsonagent/jsonv"
)

func TestUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "members are sorted",
			input: `{"b":[1,2.5,"x",true,null],"a":{"c":1e3}}`,
			want:  `{"a":{"c":1000.0},"b":[1,2.5,"x",true,null]}`,
		},
		{
			name:  "escapes are decoded",
			input: `{"s":"tab\there é"}`,
			want:  "{\"s\":\"tab\there é\"}",
		},
		{
			name:  "integer overflow becomes number",
			input: `[9223372036854775808]`,
			want:  `[9223372036854775808.0]`,
		},
		{name: "scalar document", input: `-12`, want: `-12`},
		{name: "empty input", input: ``, wantErr: true},
		{name: "syntax error", input: `{"a":}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	o := jsonv.NewObject().
		Add("z", jsonv.Integer(1)).
		Add("a", jsonv.MustParse(`[2.5,"q",null,true]`)).
		Add("n", jsonv.Number(1)).
		Add("s", jsonv.String("a\nb"))

	got, err := MarshalJSON(jsonv.ObjectValue(o))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"z":1,"a":[2.5,"q",null,true],"n":1,"s":"a\nb"}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}

	if _, err := MarshalJSON(jsonv.Number(math.NaN())); err == nil {
		t.Error("expected error for NaN")
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, jsonv.MustParse(`{"b":1,"a":2}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := EncodeJSON(&buf, jsonv.MustParse(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{\"b\":1,\"a\":2}\n[]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}

	got, err := DecodeJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(`{"a":2,"b":1}`, got.String()); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{
			name:  "nested maps",
			input: map[string]any{"y": []any{int64(1), "two"}, "x": map[string]any{}},
			want:  `{"x":{},"y":[1,"two"]}`,
		},
		{
			name:  "interface keyed map",
			input: map[any]any{"k": uint64(7)},
			want:  `{"k":7}`,
		},
		{name: "bytes become string", input: []byte("raw"), want: `"raw"`},
		{name: "nil is null", input: nil, want: `null`},
		{name: "non string key", input: map[any]any{1: "x"}, wantErr: true},
		{name: "unsigned overflow", input: []any{uint64(math.MaxUint64)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
			if tt.wantErr {
				return
			}

			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToAny(t *testing.T) {
	t.Parallel()

	o := jsonv.NewObject().
		Add("a", jsonv.Integer(1)).
		Add("a", jsonv.Integer(2)).
		Add("l", jsonv.MustParse(`[1.5,"s",false,null]`))

	want := map[string]any{
		"a": int64(1),
		"l": []any{1.5, "s", false, nil},
	}
	if diff := cmp.Diff(want, ToAny(jsonv.ObjectValue(o))); diff != "" {
		t.Errorf("ToAny() mismatch (-want +got):\n%s", diff)
	}
}
