package jsonv

import (
	"fmt"
	"strconv"
)

// ParseError is returned when the scanner meets malformed input.
// A failed scan never yields a partial tree.
type ParseError struct {
	Offset  int64
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonv: %s at offset %d", e.Message, e.Offset)
}

// TypeMismatchError is returned when a Value is narrowed to a kind it does not hold.
type TypeMismatchError struct {
	From Kind
	To   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("jsonv: can't convert item of type %s to %s", e.From, e.To)
}

// NullAccessError is returned when an unset Value is narrowed.
type NullAccessError struct {
	To Kind
}

func (e *NullAccessError) Error() string {
	return fmt.Sprintf("jsonv: can't convert item from unset value to %s", e.To)
}

// NotFoundError is returned by read access to a missing member or position.
// Index is -1 for lookups by name.
type NotFoundError struct {
	Name  string
	Index int
	Len   int
}

func notFoundName(name string) *NotFoundError {
	return &NotFoundError{Name: name, Index: -1}
}

func notFoundIndex(i, n int) *NotFoundError {
	return &NotFoundError{Index: i, Len: n}
}

func (e *NotFoundError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("jsonv: %s missing", strconv.Quote(e.Name))
	}
	return fmt.Sprintf("jsonv: index %d out of bounds (len=%d)", e.Index, e.Len)
}
