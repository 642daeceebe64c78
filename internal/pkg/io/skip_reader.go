package io

import (
	"bytes"
	"io"
)

// SkipCharReader drops every occurrence of skip from the underlying reader,
// for example the '\r' of CRLF line endings.
type SkipCharReader struct {
	r    io.Reader
	skip byte
}

func NewSkipCharReader(r io.Reader, skip byte) *SkipCharReader {
	return &SkipCharReader{r: r, skip: skip}
}

func (s *SkipCharReader) Read(p []byte) (int, error) {
	for {
		n, err := s.r.Read(p)
		if n > 0 {
			kept := p[:0]
			for chunk := p[:n]; len(chunk) > 0; {
				i := bytes.IndexByte(chunk, s.skip)
				if i < 0 {
					kept = append(kept, chunk...)
					break
				}
				kept = append(kept, chunk[:i]...)
				chunk = chunk[i+1:]
			}
			n = len(kept)
		}
		// a read made only of skipped bytes must not look like an empty read
		if n > 0 || err != nil {
			return n, err
		}
	}
}
