package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/mazrean/jsonagent/internal/closer"
	"github.com/mazrean/jsonagent/jsonv"
)

const zstdSuffix = ".zst"

// open returns a reader for path, stdin for "" or "-". Files ending in .zst
// are decompressed.
func (g *Globals) open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	if !strings.HasSuffix(path, zstdSuffix) {
		return f, nil
	}

	return &zstdReadCloser{ReadCloser: zstd.NewReader(f), file: f}, nil
}

type zstdReadCloser struct {
	io.ReadCloser
	file *os.File
}

func (z *zstdReadCloser) Close() error {
	return errors.Join(z.ReadCloser.Close(), z.file.Close())
}

func (g *Globals) readAll(path string) (data []byte, err error) {
	r, err := g.open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close input: %w", closeErr))
		}
	}()

	data, err = io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

func (g *Globals) readDocument(path string) (v jsonv.Value, err error) {
	r, err := g.open(path)
	if err != nil {
		return jsonv.Value{}, err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close input: %w", closeErr))
		}
	}()

	v, err = jsonv.Scan(r, jsonv.WithMaxDepth(g.MaxDepth))
	if err != nil {
		if path == "" {
			path = "stdin"
		}
		return jsonv.Value{}, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

func (g *Globals) readObject(path string) (*jsonv.Object, error) {
	v, err := g.readDocument(path)
	if err != nil {
		return nil, err
	}

	o, err := v.AsObject()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return o, nil
}

// output returns the writer for command results. It is flushed and closed
// by the closer hooks when the command ends.
func (g *Globals) output() (io.Writer, error) {
	var (
		w       io.Writer = os.Stdout
		closeFn           = func() error { return nil }
	)
	if g.Output != "" && g.Output != "-" {
		f, err := os.Create(g.Output)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		w, closeFn = f, f.Close
	}

	if g.Zstd || strings.HasSuffix(g.Output, zstdSuffix) {
		zw := zstd.NewWriterLevel(w, zstd.DefaultCompression)
		fileClose := closeFn
		w, closeFn = zw, func() error {
			return errors.Join(zw.Close(), fileClose())
		}
	}

	bw := bufio.NewWriter(w)
	closer.Add("output", func(context.Context) error {
		return errors.Join(bw.Flush(), closeFn())
	})

	return bw, nil
}

// emit writes v in compact form followed by a newline.
func (g *Globals) emit(v jsonv.Value) error {
	w, err := g.output()
	if err != nil {
		return err
	}

	if err := jsonv.Write(w, v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// parseArgument reads a command line value as a document or scalar token,
// falling back to a String.
func parseArgument(s string) jsonv.Value {
	if v, err := jsonv.Parse("[" + s + "]"); err == nil {
		if a, err := v.AsArray(); err == nil && a.Len() == 1 {
			e, _ := a.Get(0)
			return e
		}
	}

	return jsonv.String(s)
}
