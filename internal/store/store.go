// Package store keeps named documents on disk, zstd compressed.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/DataDog/zstd"
	"github.com/mazrean/jsonagent/internal/metrics"
	"github.com/mazrean/jsonagent/jsonv"
	"github.com/mazrean/jsonagent/log"
)

const (
	filePrefix = "d-"
	fileSuffix = ".zst"
)

var (
	putGauge = metrics.NewGauge("store_put")
	getGauge = metrics.NewGauge("store_get")
)

type Store struct {
	logger   log.Logger
	rootPath string
	level    int

	objectMapLocker sync.Mutex
	objectMap       map[string]*sync.RWMutex
}

type Option func(*Store)

// WithCompressionLevel sets the zstd level used by Put.
func WithCompressionLevel(level int) Option {
	return func(s *Store) {
		s.level = level
	}
}

func New(logger log.Logger, dir string, options ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create root directory: %w", err)
	}

	s := &Store{
		logger:    logger,
		rootPath:  dir,
		level:     zstd.DefaultCompression,
		objectMap: map[string]*sync.RWMutex{},
	}
	for _, option := range options {
		option(s)
	}

	logger.Infof("store initialized: dir=%s", dir)

	return s, nil
}

func (s *Store) locker(key string) *sync.RWMutex {
	s.objectMapLocker.Lock()
	defer s.objectMapLocker.Unlock()

	l, ok := s.objectMap[key]
	if !ok {
		l = &sync.RWMutex{}
		s.objectMap[key] = l
	}

	return l
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("empty key")
	}
	return nil
}

// Put stores v under key, replacing any previous document.
func (s *Store) Put(ctx context.Context, key string, v jsonv.Value) (err error) {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !v.IsObject() && !v.IsArray() {
		return fmt.Errorf("store %s: document must be an Object or an Array", v.Kind())
	}

	putGauge.Stopwatch(func() {
		err = s.put(key, v)
	}, key)

	return err
}

func (s *Store) put(key string, v jsonv.Value) (err error) {
	l := s.locker(key)
	l.Lock()
	defer l.Unlock()

	f, err := os.CreateTemp(s.rootPath, "tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				err = errors.Join(err, fmt.Errorf("remove temp file: %w", rmErr))
			}
		}
	}()

	zw := zstd.NewWriterLevel(f, s.level)
	if err := jsonv.Write(zw, v); err != nil {
		_ = zw.Close()
		_ = f.Close()
		return fmt.Errorf("write document: %w", err)
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("close compressor: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(f.Name(), s.filePath(key)); err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	s.logger.Debugf("document stored: key=%s", key)

	return nil
}

// Get loads the document stored under key. A missing key is a
// *jsonv.NotFoundError.
func (s *Store) Get(ctx context.Context, key string) (v jsonv.Value, err error) {
	if err := validateKey(key); err != nil {
		return jsonv.Value{}, err
	}
	if err := ctx.Err(); err != nil {
		return jsonv.Value{}, err
	}

	getGauge.Stopwatch(func() {
		v, err = s.get(key)
	}, key)

	return v, err
}

func (s *Store) get(key string) (v jsonv.Value, err error) {
	l := s.locker(key)
	l.RLock()
	defer l.RUnlock()

	f, err := os.Open(s.filePath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return jsonv.Value{}, &jsonv.NotFoundError{Name: key, Index: -1}
		}
		return jsonv.Value{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	zr := zstd.NewReader(f)
	defer func() {
		if closeErr := zr.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close decompressor: %w", closeErr))
		}
	}()

	v, err = jsonv.Scan(zr)
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("read document %q: %w", key, err)
	}

	return v, nil
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l := s.locker(key)
	l.Lock()
	defer l.Unlock()

	if err := os.Remove(s.filePath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove document: %w", err)
	}

	return true, nil
}

// Keys lists the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("read root directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		key, err := url.PathUnescape(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
		if err != nil {
			s.logger.Warnf("skip unexpected file %s: %v", name, err)
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys, nil
}

func (s *Store) filePath(key string) string {
	return filepath.Join(s.rootPath, filePrefix+url.PathEscape(key)+fileSuffix)
}
