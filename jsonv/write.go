package jsonv

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// textWriter is satisfied by strings.Builder, bytes.Buffer and bufio.Writer.
// Their errors are sticky or absent, so write results are not checked per call.
type textWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

// Write writes the compact serialization of v to w.
func Write(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	writeValue(bw, v)
	return bw.Flush()
}

// String returns the compact serialization of v. An unset value renders as
// the empty string at the top level and as null inside containers.
func (v Value) String() string {
	if !v.IsSet() {
		return ""
	}
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func writeString(w textWriter, s string) {
	_ = w.WriteByte('"')
	_, _ = stringEscaper.WriteString(w, s)
	_ = w.WriteByte('"')
}

// formatNumber prints f in fixed notation with the shortest digits that
// round-trip, always with a '.'. NaN and infinities have no text form and
// are written as null.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func writeValue(w textWriter, v Value) {
	switch v.kind {
	case KindInteger:
		_, _ = w.WriteString(strconv.FormatInt(v.intVal, 10))
	case KindBoolean:
		_, _ = w.WriteString(strconv.FormatBool(v.boolVal))
	case KindNumber:
		_, _ = w.WriteString(formatNumber(v.numberVal))
	case KindNull, KindUnset:
		_, _ = w.WriteString("null")
	case KindString:
		writeString(w, v.strVal)
	case KindObject:
		writeObject(w, v.objVal)
	case KindArray:
		writeArray(w, v.arrVal)
	}
}

func writeObject(w textWriter, o *Object) {
	_ = w.WriteByte('{')
	for i, p := range o.Pairs() {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		writeString(w, p.name)
		_ = w.WriteByte(':')
		writeValue(w, p.Value)
	}
	_ = w.WriteByte('}')
}

func writeArray(w textWriter, a *Array) {
	_ = w.WriteByte('[')
	for i, v := range a.Values() {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		writeValue(w, v)
	}
	_ = w.WriteByte(']')
}
