package jsonv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a member name or an array position.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Key returns a member-name segment.
func Key(name string) Segment {
	return Segment{Name: name}
}

// Pos returns an array-position segment.
func Pos(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

// Path addresses a slot inside a document, starting at an Object.
type Path []Segment

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 && !s.IsIndex {
			sb.WriteByte('.')
		}
		if s.IsIndex {
			sb.WriteString(s.String())
			continue
		}
		sb.WriteString(strings.NewReplacer(`\`, `\\`, ".", `\.`, "[", `\[`).Replace(s.Name))
	}
	return sb.String()
}

var errEmptyPath = errors.New("jsonv: empty path")

// ParsePath parses dotted paths such as "a.b[0].c". A backslash makes the
// next character part of a name.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, errEmptyPath
	}

	var (
		path    Path
		name    strings.Builder
		pending bool
	)
	flush := func() {
		if pending {
			path = append(path, Key(name.String()))
			name.Reset()
			pending = false
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && c != '[' && !pending && i > 0 && s[i-1] == ']' {
			return nil, fmt.Errorf("jsonv: path %q: missing dot at %d", s, i)
		}

		switch c {
		case '\\':
			if i+1 >= len(s) {
				return nil, fmt.Errorf("jsonv: path %q: dangling escape", s)
			}
			i++
			name.WriteByte(s[i])
			pending = true
		case '.':
			if !pending && (i == 0 || s[i-1] != ']') {
				return nil, fmt.Errorf("jsonv: path %q: empty name at %d", s, i)
			}
			flush()
		case '[':
			flush()
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("jsonv: path %q: unclosed [", s)
			}
			n, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("jsonv: path %q: bad index %q", s, s[i+1:i+end])
			}
			path = append(path, Pos(n))
			i += end
		default:
			name.WriteByte(c)
			pending = true
		}
	}
	if s[len(s)-1] == '.' {
		return nil, fmt.Errorf("jsonv: path %q: trailing dot", s)
	}
	flush()

	return path, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// SetPath writes x at path, creating missing intermediate Objects (and
// Arrays before a position segment) left to right.
func (o *Object) SetPath(path Path, x any) error {
	if len(path) == 0 {
		return errEmptyPath
	}
	if path[0].IsIndex {
		return fmt.Errorf("path %s: %w", path, &TypeMismatchError{From: KindObject, To: KindArray})
	}

	p := o.At(path[0].Name)
	for _, seg := range path[1:] {
		if seg.IsIndex {
			p = p.indexVivify(seg.Index)
		} else {
			p = p.At(seg.Name)
		}
	}
	if err := p.Set(x); err != nil {
		return fmt.Errorf("path %s: %w", path, err)
	}
	return nil
}

// GetPath reads the value at path.
func (o *Object) GetPath(path Path) (Value, error) {
	if len(path) == 0 {
		return Value{}, errEmptyPath
	}

	v := ObjectValue(o)
	for i, seg := range path {
		var err error
		if seg.IsIndex {
			v, err = v.Index(seg.Index)
		} else {
			v, err = v.Get(seg.Name)
		}
		if err != nil {
			return Value{}, fmt.Errorf("path %s: %w", path[:i+1], err)
		}
	}
	return v, nil
}
