//go:build !amd64 && !arm64

// This file is used when building for architectures Sonic does not support, utilizing the go-json library

package json // Package json provides a unified interface for JSON encoding and decoding operations

import (
	"bytes"
	stdjson "encoding/json"
	"io"

	"github.com/goccy/go-json"
)

const Library = "github.com/goccy/go-json"

// Number is the type numbers decode to after UseNumber.
type Number = stdjson.Number

// Decoder reads JSON values with go-json
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder creates a new JSON decoder that wraps the provided io.Reader
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		dec: json.NewDecoder(r),
	}
}

// UseNumber makes numbers decoded into an interface{} a Number instead of a float64
func (d *Decoder) UseNumber() {
	d.dec.UseNumber()
}

// Decode decodes the next JSON value into v
func (d *Decoder) Decode(v any) error {
	return d.dec.Decode(v)
}

// Encoder writes JSON values with go-json
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder creates a new JSON encoder that wraps the provided io.Writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		enc: json.NewEncoder(w),
	}
}

// Encode encodes v; go-json appends the newline itself
func (e *Encoder) Encode(v any) error {
	return e.enc.Encode(v)
}

// Marshal returns the encoding of v without a trailing newline
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b, []byte{'\n'}), nil
}
