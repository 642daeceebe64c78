package jsonv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const defaultMaxDepth = 512

// Scanner reads documents from a byte stream.
//
// A document starts at the first '{' or '['; bytes before it are skipped.
// Strings keep every character after a backslash literally. Plain tokens are
// classified by shape: true and false are Boolean, null is Null, tokens with
// '.', 'e' or 'E' are Number, everything else is a base 10 Integer.
//
// A Scanner can read consecutive documents from the same stream. After an
// error the stream position is unspecified and the Scanner must be dropped.
type Scanner struct {
	r        io.ByteScanner
	offset   int64
	depth    int
	maxDepth int
}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithMaxDepth limits container nesting. Deeper input is a ParseError.
func WithMaxDepth(n int) ScanOption {
	return func(s *Scanner) {
		s.maxDepth = n
	}
}

// NewScanner creates a Scanner reading from r. r is buffered unless it
// already implements io.ByteScanner, so a buffered r may be read past the
// end of a document.
func NewScanner(r io.Reader, options ...ScanOption) *Scanner {
	br, ok := r.(io.ByteScanner)
	if !ok {
		br = bufio.NewReader(r)
	}

	s := &Scanner{
		r:        br,
		maxDepth: defaultMaxDepth,
	}
	for _, option := range options {
		option(s)
	}

	return s
}

// Scan reads the next document. It returns io.EOF when the stream ends
// before another document starts.
func (s *Scanner) Scan() (Value, error) {
	s.depth = 0

	// nowhere: skip until a container opens
	for {
		c, err := s.next()
		if err != nil {
			return Value{}, err
		}
		switch c {
		case '{':
			return s.scanObject()
		case '[':
			return s.scanArray()
		}
	}
}

func (s *Scanner) next() (byte, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("read input: %w", err)
	}
	s.offset++
	return c, nil
}

func (s *Scanner) unread() {
	if err := s.r.UnreadByte(); err == nil {
		s.offset--
	}
}

func (s *Scanner) errorf(format string, args ...any) error {
	return &ParseError{Offset: s.offset, Message: fmt.Sprintf(format, args...)}
}

// unexpectedEnd turns io.EOF into a ParseError naming what was missing.
func (s *Scanner) unexpectedEnd(err error, missing string) error {
	if errors.Is(err, io.EOF) {
		return s.errorf("unexpected end of input, missing %s", missing)
	}
	return err
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// nextSignificant returns the next non-blank byte.
func (s *Scanner) nextSignificant() (byte, error) {
	for {
		c, err := s.next()
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			return c, nil
		}
	}
}

func (s *Scanner) enter() error {
	s.depth++
	if s.depth > s.maxDepth {
		return s.errorf("maximum depth %d exceeded", s.maxDepth)
	}
	return nil
}

// scanObject runs after the opening '{'.
func (s *Scanner) scanObject() (Value, error) {
	if err := s.enter(); err != nil {
		return Value{}, err
	}
	defer func() { s.depth-- }()

	o := NewObject()
	for {
		// in name
		c, err := s.nextSignificant()
		if err != nil {
			return Value{}, s.unexpectedEnd(err, "'}'")
		}
		if c == '}' {
			if o.Len() > 0 {
				return Value{}, s.errorf("trailing comma in object")
			}
			return ObjectValue(o), nil
		}
		if c != '"' {
			return Value{}, s.errorf("member name must be quoted, found %q", c)
		}
		name, err := s.scanString()
		if err != nil {
			return Value{}, err
		}

		c, err = s.nextSignificant()
		if err != nil {
			return Value{}, s.unexpectedEnd(err, "':'")
		}
		if c != ':' {
			return Value{}, s.errorf("missing ':' after member %q", name)
		}

		v, err := s.scanValue()
		if err != nil {
			return Value{}, err
		}
		o.Add(name, v)

		c, err = s.nextSignificant()
		if err != nil {
			return Value{}, s.unexpectedEnd(err, "'}'")
		}
		switch c {
		case ',':
		case '}':
			return ObjectValue(o), nil
		default:
			return Value{}, s.errorf("expected ',' or '}' after member %q, found %q", name, c)
		}
	}
}

// scanArray runs after the opening '['.
func (s *Scanner) scanArray() (Value, error) {
	if err := s.enter(); err != nil {
		return Value{}, err
	}
	defer func() { s.depth-- }()

	a := NewArray()

	c, err := s.nextSignificant()
	if err != nil {
		return Value{}, s.unexpectedEnd(err, "']'")
	}
	if c == ']' {
		return ArrayValue(a), nil
	}
	s.unread()

	for {
		v, err := s.scanValue()
		if err != nil {
			return Value{}, err
		}
		a.Push(v)

		c, err := s.nextSignificant()
		if err != nil {
			return Value{}, s.unexpectedEnd(err, "']'")
		}
		switch c {
		case ',':
		case ']':
			return ArrayValue(a), nil
		default:
			return Value{}, s.errorf("expected ',' or ']' after element %d, found %q", a.Len()-1, c)
		}
	}
}

// scanString runs after the opening quote.
func (s *Scanner) scanString() (string, error) {
	var sb strings.Builder
	for {
		c, err := s.next()
		if err != nil {
			return "", s.unexpectedEnd(err, "closing '\"' of string")
		}
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			c, err = s.next()
			if err != nil {
				return "", s.unexpectedEnd(err, "closing '\"' of string")
			}
		}
		sb.WriteByte(c)
	}
}

func (s *Scanner) scanValue() (Value, error) {
	c, err := s.nextSignificant()
	if err != nil {
		return Value{}, s.unexpectedEnd(err, "value")
	}

	switch c {
	case '"':
		str, err := s.scanString()
		if err != nil {
			return Value{}, err
		}
		return String(str), nil
	case '{':
		return s.scanObject()
	case '[':
		return s.scanArray()
	case ',', '}', ']', ':':
		return Value{}, s.errorf("empty value before %q", c)
	}

	var tok strings.Builder
	tok.WriteByte(c)
	for {
		c, err := s.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Value{}, err
		}
		if isSpace(c) || c == ',' || c == '}' || c == ']' {
			s.unread()
			break
		}
		tok.WriteByte(c)
	}

	return s.classify(tok.String())
}

func isNumeric(tok string) bool {
	if tok == "" || (tok[0] != '-' && (tok[0] < '0' || tok[0] > '9')) {
		return false
	}
	for i := 1; i < len(tok); i++ {
		if !strings.ContainsRune("0123456789+-.eE", rune(tok[i])) {
			return false
		}
	}
	return true
}

func (s *Scanner) classify(tok string) (Value, error) {
	switch tok {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	case "null":
		return Null(), nil
	}

	if !isNumeric(tok) {
		return Value{}, s.errorf("bad value %q", tok)
	}

	if strings.ContainsAny(tok, ".eE") {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Value{}, s.errorf("bad number %q", tok)
		}
		return Number(f), nil
	}

	i, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return Value{}, s.errorf("bad integer %q", tok)
	}
	return Integer(i), nil
}

// Scan reads one document from r.
func Scan(r io.Reader, options ...ScanOption) (Value, error) {
	v, err := NewScanner(r, options...).Scan()
	if errors.Is(err, io.EOF) {
		return Value{}, &ParseError{Message: "no input"}
	}
	return v, err
}

// ScanObject reads one document from r that must be an Object.
func ScanObject(r io.Reader, options ...ScanOption) (*Object, error) {
	v, err := Scan(r, options...)
	if err != nil {
		return nil, err
	}
	return v.AsObject()
}

// Parse reads one document from s.
func Parse(s string, options ...ScanOption) (Value, error) {
	return Scan(strings.NewReader(s), options...)
}

// ParseObject reads one Object document from s.
func ParseObject(s string, options ...ScanOption) (*Object, error) {
	return ScanObject(strings.NewReader(s), options...)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
