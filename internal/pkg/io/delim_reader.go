package io

import (
	"bufio"
	"errors"
	"io"
)

var ErrInvalidUnread = errors.New("io: invalid use of UnreadByte")

// DelimReader splits a stream into frames separated by delim. Reads stop with
// io.EOF at the end of the current frame; Next moves to the following one.
// It implements io.ByteScanner so a decoder consumes at most one frame.
type DelimReader struct {
	r       *bufio.Reader
	delim   byte
	reached bool
	started bool
	unread  bool
	frame   int
}

func NewDelimReader(r io.Reader, delim byte) *DelimReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &DelimReader{r: br, delim: delim}
}

// Next discards what is left of the current frame and starts the next one.
// It returns io.EOF once the stream has no more data.
func (d *DelimReader) Next() error {
	if d.started && !d.reached {
		for {
			c, err := d.r.ReadByte()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return err
			}
			if c == d.delim {
				break
			}
		}
	}
	d.started = true
	d.reached = false
	d.unread = false

	if _, err := d.r.Peek(1); err != nil {
		return err
	}
	d.frame++

	return nil
}

// Frame is the 1-based number of the current frame.
func (d *DelimReader) Frame() int {
	return d.frame
}

func (d *DelimReader) ReadByte() (byte, error) {
	d.unread = false
	if d.reached {
		return 0, io.EOF
	}

	c, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if c == d.delim {
		d.reached = true
		return 0, io.EOF
	}
	d.unread = true

	return c, nil
}

func (d *DelimReader) UnreadByte() error {
	if !d.unread {
		return ErrInvalidUnread
	}
	d.unread = false

	return d.r.UnreadByte()
}

func (d *DelimReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(p) {
		c, err := d.ReadByte()
		if err != nil {
			if n > 0 && errors.Is(err, io.EOF) {
				break
			}
			return n, err
		}
		p[n] = c
		n++

		if d.r.Buffered() == 0 {
			break
		}
	}
	d.unread = false

	return n, nil
}
