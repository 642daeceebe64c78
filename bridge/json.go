package bridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mazrean/jsonagent/internal/pkg/json"
	"github.com/mazrean/jsonagent/jsonv"
)

// ordered marshals a Value as standard JSON, keeping member order.
type ordered struct {
	v jsonv.Value
}

func (o ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, o.v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v jsonv.Value) error {
	switch v.Kind() {
	case jsonv.KindObject:
		o, _ := v.AsObject()
		buf.WriteByte('{')
		for i, p := range o.Pairs() {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(p.Name())
			if err != nil {
				return fmt.Errorf("marshal name %q: %w", p.Name(), err)
			}
			buf.Write(name)
			buf.WriteByte(':')
			if err := appendJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case jsonv.KindArray:
		a, _ := v.AsArray()
		buf.WriteByte('[')
		for i, e := range a.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case jsonv.KindInteger:
		i, _ := v.AsInteger()
		buf.WriteString(strconv.FormatInt(i, 10))
	default:
		b, err := json.Marshal(ToAny(v))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", v.Kind(), err)
		}
		buf.Write(b)
	}
	return nil
}

// MarshalJSON encodes v as standard JSON with full string escaping.
func MarshalJSON(v jsonv.Value) ([]byte, error) {
	return json.Marshal(ordered{v: v})
}

// EncodeJSON writes v as one line of standard JSON.
func EncodeJSON(w io.Writer, v jsonv.Value) error {
	return json.NewEncoder(w).Encode(ordered{v: v})
}

// DecodeJSON reads one standard JSON document. Integers stay Integers when
// they fit in 64 bits.
func DecodeJSON(r io.Reader) (jsonv.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var x any
	if err := dec.Decode(&x); err != nil {
		if errors.Is(err, io.EOF) {
			return jsonv.Value{}, fmt.Errorf("decode json: %w", io.ErrUnexpectedEOF)
		}
		return jsonv.Value{}, fmt.Errorf("decode json: %w", err)
	}
	return FromAny(x)
}

// UnmarshalJSON decodes standard JSON text.
func UnmarshalJSON(data []byte) (jsonv.Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}
