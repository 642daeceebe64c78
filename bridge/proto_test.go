package bridge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazrean/jsonagent/jsonv"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestToProtoValue(t *testing.T) {
	t.Parallel()

	want, err := structpb.NewValue(map[string]any{
		"a": 1,
		"b": []any{"x", nil, true, 2.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ToProtoValue(jsonv.MustParse(`{"a":1,"b":["x",null,true,2.5],"a":2}`))
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("proto mismatch (-want +got):\n%s", diff)
	}
}

func TestProto_roundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object",
			input: `{"z":[1,2.5,"s",false,null],"a":{"n":3}}`,
			want:  `{"a":{"n":3},"z":[1,2.5,"s",false,null]}`,
		},
		{name: "integral number becomes integer", input: `[2.0]`, want: `[2]`},
		{name: "null", input: `null`, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalProto(jsonv.MustParse(tt.input))
			if err != nil {
				t.Fatalf("unexpected marshal error: %v", err)
			}

			got, err := UnmarshalProto(data)
			if err != nil {
				t.Fatalf("unexpected unmarshal error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got.String()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
