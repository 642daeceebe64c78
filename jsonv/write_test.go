package jsonv

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "whole", in: 1, want: "1.0"},
		{name: "zero", in: 0, want: "0.0"},
		{name: "fraction", in: 0.1, want: "0.1"},
		{name: "negative", in: -2.5, want: "-2.5"},
		{name: "large stays fixed", in: 1e21, want: "1000000000000000000000.0"},
		{name: "small stays fixed", in: 1e-7, want: "0.0000001"},
		{name: "nan", in: math.NaN(), want: "null"},
		{name: "infinity", in: math.Inf(-1), want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Number(tt.in).String()); diff != "" {
				t.Errorf("number mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	o := NewObject().
		Add("s", String(`a"b\c`)).
		Add("l", ArrayValue(NewArray(Integer(1), Boolean(true), Null()))).
		Add("unset", Value{})

	var buf bytes.Buffer
	if err := Write(&buf, ObjectValue(o)); err != nil {
		t.Fatal(err)
	}

	want := `{"s":"a\"b\\c","l":[1,true,null],"unset":null}`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	if got := (Value{}).String(); got != "" {
		t.Errorf("unset String() = %q, want empty", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_error(t *testing.T) {
	t.Parallel()

	if err := Write(failingWriter{}, MustParse(`{"a":1}`)); err == nil {
		t.Error("expected error but got nil")
	}
}

func TestPretty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty object", input: `{}`, want: "{}\n"},
		{name: "empty array", input: `[]`, want: "[]\n"},
		{name: "single member inline", input: `{"a":{"b":1,"c":2}}`, want: "{\"a\": {\"b\":1,\"c\":2}}\n"},
		{name: "single element inline", input: `[{"a":1,"b":2}]`, want: "[{\"a\":1,\"b\":2}]\n"},
		{name: "scalar array inline", input: `[1,"x",null,2.5]`, want: "[1,\"x\",null,2.5]\n"},
		{
			name:  "members per line",
			input: `{"a":1,"b":"two"}`,
			want:  "{\n  \"a\": 1,\n  \"b\": \"two\"\n}\n",
		},
		{
			name:  "nested",
			input: `{"a":1,"b":{"c":[1,2],"d":{"e":1},"f":[{"g":1,"h":2},3]}}`,
			want: `{
  "a": 1,
  "b": {
    "c": [1,2],
    "d": {"e": 1},
    "f": [
      {
        "g": 1,
        "h": 2
      },
      3
    ]
  }
}
`,
		},
		{
			name:  "array of arrays",
			input: `[[1,2],[]]`,
			want:  "[\n  [1,2],\n  []\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParse(tt.input)

			if diff := cmp.Diff(tt.want, Pretty(v)); diff != "" {
				t.Errorf("Pretty() mismatch (-want +got):\n%s", diff)
			}

			var buf bytes.Buffer
			if err := WritePretty(&buf, v); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("WritePretty() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
