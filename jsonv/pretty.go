package jsonv

import (
	"bufio"
	"io"
	"strings"
)

const indentUnit = "  "

// WritePretty writes v indented by two spaces per level, followed by a
// newline.
//
// Single-member objects and single-element arrays stay on one line with the
// member written compact, as do arrays holding only scalars. Other
// containers put one member per line.
func WritePretty(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	writePretty(bw, v, "")
	_ = bw.WriteByte('\n')
	return bw.Flush()
}

// Pretty returns the indented serialization of v.
func Pretty(v Value) string {
	var sb strings.Builder
	writePretty(&sb, v, "")
	sb.WriteByte('\n')
	return sb.String()
}

func isScalar(v Value) bool {
	return v.kind != KindObject && v.kind != KindArray
}

func writePretty(w textWriter, v Value, indent string) {
	switch v.kind {
	case KindObject:
		writePrettyObject(w, v.objVal, indent)
	case KindArray:
		writePrettyArray(w, v.arrVal, indent)
	default:
		writeValue(w, v)
	}
}

func writePrettyObject(w textWriter, o *Object, indent string) {
	switch o.Len() {
	case 0:
		_, _ = w.WriteString("{}")
		return
	case 1:
		p := o.pairs[0]
		_ = w.WriteByte('{')
		writeString(w, p.name)
		_, _ = w.WriteString(": ")
		writeValue(w, p.Value)
		_ = w.WriteByte('}')
		return
	}

	inner := indent + indentUnit
	_, _ = w.WriteString("{\n")
	for i, p := range o.pairs {
		_, _ = w.WriteString(inner)
		writeString(w, p.name)
		_, _ = w.WriteString(": ")
		writePretty(w, p.Value, inner)
		if i < len(o.pairs)-1 {
			_ = w.WriteByte(',')
		}
		_ = w.WriteByte('\n')
	}
	_, _ = w.WriteString(indent)
	_ = w.WriteByte('}')
}

func writePrettyArray(w textWriter, a *Array, indent string) {
	flat := a.Len() <= 1
	if !flat {
		flat = true
		for _, v := range a.items {
			if !isScalar(v) {
				flat = false
				break
			}
		}
	}
	if flat {
		writeArray(w, a)
		return
	}

	inner := indent + indentUnit
	_, _ = w.WriteString("[\n")
	for i, v := range a.items {
		_, _ = w.WriteString(inner)
		writePretty(w, v, inner)
		if i < len(a.items)-1 {
			_ = w.WriteByte(',')
		}
		_ = w.WriteByte('\n')
	}
	_, _ = w.WriteString(indent)
	_ = w.WriteByte(']')
}
