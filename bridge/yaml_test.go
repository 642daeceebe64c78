package bridge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazrean/jsonagent/jsonv"
)

func TestUnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "mapping order is kept",
			input: "b: 1\na: [x, 2.5, true, ~]\n",
			want:  `{"b":1,"a":["x",2.5,true,null]}`,
		},
		{
			name:  "timestamps stay text",
			input: "day: 2001-12-14\n",
			want:  `{"day":"2001-12-14"}`,
		},
		{name: "hex integer", input: "n: 0x10\n", want: `{"n":16}`},
		{
			name:  "aliases are expanded",
			input: "base: &b {x: 1}\nref: *b\n",
			want:  `{"base":{"x":1},"ref":{"x":1}}`,
		},
		{name: "quoted number is a string", input: `v: "1"`, want: `{"v":"1"}`},
		{name: "empty document", input: "", want: `null`},
		{name: "unclosed flow sequence", input: "a: [1, 2\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalYAML([]byte(tt.input))
			if tt.wantErr != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
			if tt.wantErr {
				return
			}

			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	got, err := MarshalYAML(jsonv.MustParse(`{"b":1,"a":"x","t":"true"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "b: 1\na: x\nt: \"true\"\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_roundTrip(t *testing.T) {
	t.Parallel()

	input := `{"name":"x","list":[1,2.5,true,null,"1"],"nested":{"k":[],"e":{}},"n":3.0}`

	data, err := MarshalYAML(jsonv.MustParse(input))
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	got, err := UnmarshalYAML(data)
	if err != nil {
		t.Fatalf("unexpected unmarshal error: %v\n%s", err, data)
	}

	if diff := cmp.Diff(input, got.String()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
