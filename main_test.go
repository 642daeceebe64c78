package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazrean/jsonagent/jsonv"
)

func TestParseArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "integer", arg: "42", want: "42"},
		{name: "number", arg: "1.5", want: "1.5"},
		{name: "boolean", arg: "true", want: "true"},
		{name: "null", arg: "null", want: "null"},
		{name: "quoted string", arg: `"x y"`, want: `"x y"`},
		{name: "object", arg: `{"a":1}`, want: `{"a":1}`},
		{name: "bare word", arg: "hello", want: `"hello"`},
		{name: "two tokens", arg: "1,2", want: `"1,2"`},
		{name: "empty", arg: "", want: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseArgument(tt.arg)
			if diff := cmp.Diff("["+tt.want+"]", jsonv.ArrayValue(jsonv.NewArray(got)).String()); diff != "" {
				t.Errorf("parseArgument() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	doc := jsonv.MustParse(`{"b":1,"a":[true,null,"x"]}`)

	for _, format := range []string{"jsonv", "json", "yaml", "proto"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			data, err := encode(format, doc)
			if err != nil {
				t.Fatalf("encode() error = %v", err)
			}

			got, err := decode(format, data)
			if err != nil {
				t.Fatalf("decode() error = %v", err)
			}

			want := doc
			if format == "proto" {
				want = jsonv.NormaliseValue(jsonv.MustParse(doc.String()), false)
			}
			if diff := cmp.Diff(want.String(), got.String()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_unknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := encode("xml", jsonv.Null()); err == nil {
		t.Error("encode() error = nil, want error")
	}
	if _, err := decode("xml", nil); err == nil {
		t.Error("decode() error = nil, want error")
	}
}
