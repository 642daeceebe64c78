//go:build amd64 || arm64

package json // Package json provides a unified interface for JSON encoding and decoding operations

import (
	stdjson "encoding/json"
	"io"

	"github.com/bytedance/sonic/decoder"
	"github.com/bytedance/sonic/encoder"
)

const Library = "github.com/bytedance/sonic"

// Number is the type numbers decode to after UseNumber.
type Number = stdjson.Number

// Decoder reads JSON values with the Sonic stream decoder
type Decoder struct {
	dec *decoder.StreamDecoder
}

// NewDecoder creates a new JSON decoder that wraps the provided io.Reader
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		dec: decoder.NewStreamDecoder(r),
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

// Encoder writes JSON values with the Sonic stream encoder
type Encoder struct {
	writer io.Writer
	enc    *encoder.StreamEncoder
}

// NewEncoder creates a new JSON encoder that wraps the provided io.Writer
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		writer: w,
		enc:    encoder.NewStreamEncoder(w),
	}
}

// Encode encodes v followed by a newline, so output stays line-delimited
func (e *Encoder) Encode(v any) error {
	if err := e.enc.Encode(v); err != nil {
		return err
	}

	_, err := e.writer.Write([]byte{'\n'})
	return err
}

// Marshal returns the encoding of v without a trailing newline
func Marshal(v any) ([]byte, error) {
	return encoder.Encode(v, 0)
}
