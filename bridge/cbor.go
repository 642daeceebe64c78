package bridge

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/mazrean/jsonagent/jsonv"
)

// encMode uses Core Deterministic Encoding, so equal documents always
// encode to identical bytes.
var encMode cbor.EncMode

// decMode decodes maps into map[string]any instead of map[any]any.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("bridge: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("bridge: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes v as deterministic CBOR. Member order is not kept.
func MarshalCBOR(v jsonv.Value) ([]byte, error) {
	b, err := encMode.Marshal(ToAny(v))
	if err != nil {
		return nil, fmt.Errorf("marshal cbor: %w", err)
	}
	return b, nil
}

// UnmarshalCBOR decodes one CBOR data item.
func UnmarshalCBOR(data []byte) (jsonv.Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return jsonv.Value{}, fmt.Errorf("unmarshal cbor: %w", err)
	}
	return FromAny(x)
}

// EncodeCBOR writes v to w as a single CBOR data item.
func EncodeCBOR(w io.Writer, v jsonv.Value) error {
	if err := encMode.NewEncoder(w).Encode(ToAny(v)); err != nil {
		return fmt.Errorf("encode cbor: %w", err)
	}
	return nil
}

// DecodeCBOR reads the next CBOR data item from r.
func DecodeCBOR(r io.Reader) (jsonv.Value, error) {
	var x any
	if err := decMode.NewDecoder(r).Decode(&x); err != nil {
		return jsonv.Value{}, fmt.Errorf("decode cbor: %w", err)
	}
	return FromAny(x)
}
