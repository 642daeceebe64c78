package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/mazrean/jsonagent/internal/store"
	"github.com/mazrean/jsonagent/jsonv"
	"github.com/mazrean/jsonagent/log"
)

type opFunc func(context.Context, *jsonv.Object) (jsonv.Value, error)

// Service answers {"op":...} requests with the document algorithms and the
// document store.
type Service struct {
	logger      log.Logger
	store       *store.Store
	ops         map[string]opFunc
	handleCount uint64
	failCount   uint64
	putCount    uint64
	loadCount   uint64
}

// New creates a Service. st may be nil, which disables the store operations.
func New(logger log.Logger, st *store.Store) *Service {
	s := &Service{logger: logger, store: st}
	s.ops = map[string]opFunc{
		"normalise": s.normalise,
		"diff":      s.diff,
		"sameItems": s.sameItems,
		"intersect": s.intersect,
		"subtract":  s.subtract,
		"find":      s.find,
		"get":       s.get,
		"set":       s.set,
		"pretty":    s.pretty,
		"echo":      s.echo,
		"put":       s.put,
		"load":      s.load,
		"delete":    s.delete,
		"keys":      s.keys,
	}

	return s
}

// Handle dispatches req on its op member.
func (s *Service) Handle(ctx context.Context, req *jsonv.Object) (jsonv.Value, error) {
	atomic.AddUint64(&s.handleCount, 1)

	v, err := s.handle(ctx, req)
	if err != nil {
		atomic.AddUint64(&s.failCount, 1)
		return jsonv.Value{}, err
	}

	return v, nil
}

func (s *Service) handle(ctx context.Context, req *jsonv.Object) (jsonv.Value, error) {
	op, err := stringMember(req, "op")
	if err != nil {
		return jsonv.Value{}, err
	}

	f, ok := s.ops[op]
	if !ok {
		return jsonv.Value{}, fmt.Errorf("unknown op: %s", op)
	}
	s.logger.Debugf("op %s", op)

	v, err := f(ctx, req)
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Ops lists the supported operation names in sorted order.
func (s *Service) Ops() []string {
	return slices.Sorted(maps.Keys(s.ops))
}

func (s *Service) Close() error {
	s.logger.Infof("handled request count: %d", atomic.LoadUint64(&s.handleCount))
	s.logger.Infof("failed request count: %d", atomic.LoadUint64(&s.failCount))
	s.logger.Infof("stored document count: %d", atomic.LoadUint64(&s.putCount))
	s.logger.Infof("loaded document count: %d", atomic.LoadUint64(&s.loadCount))
	return nil
}

func member(req *jsonv.Object, name string) (jsonv.Value, error) {
	v, err := req.Get(name)
	if err != nil {
		return jsonv.Value{}, err
	}
	return v, nil
}

func stringMember(req *jsonv.Object, name string) (string, error) {
	v, err := member(req, name)
	if err != nil {
		return "", err
	}
	str, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return str, nil
}

func objectMember(req *jsonv.Object, name string) (*jsonv.Object, error) {
	v, err := member(req, name)
	if err != nil {
		return nil, err
	}
	o, err := v.AsObject()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return o, nil
}

func arrayMember(req *jsonv.Object, name string) (*jsonv.Array, error) {
	v, err := member(req, name)
	if err != nil {
		return nil, err
	}
	a, err := v.AsArray()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

// flag reads an optional Boolean member; a missing one is false.
func flag(req *jsonv.Object, name string) (bool, error) {
	v, ok := req.Lookup(name)
	if !ok {
		return false, nil
	}
	b, err := v.AsBoolean()
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

func pathMember(req *jsonv.Object) (jsonv.Path, error) {
	s, err := stringMember(req, "path")
	if err != nil {
		return nil, err
	}
	return jsonv.ParsePath(s)
}

func (s *Service) normalise(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	doc, err := member(req, "document")
	if err != nil {
		return jsonv.Value{}, err
	}
	if !doc.IsObject() && !doc.IsArray() {
		return jsonv.Value{}, fmt.Errorf("document: %w", &jsonv.TypeMismatchError{From: doc.Kind(), To: jsonv.KindObject})
	}
	sortArrays, err := flag(req, "sortArrays")
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.NormaliseValue(doc, sortArrays), nil
}

func (s *Service) diff(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	a, err := objectMember(req, "a")
	if err != nil {
		return jsonv.Value{}, err
	}
	b, err := objectMember(req, "b")
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.ObjectValue(jsonv.SetDifference(a, b)), nil
}

func (s *Service) sameItems(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	a, err := objectMember(req, "a")
	if err != nil {
		return jsonv.Value{}, err
	}
	b, err := objectMember(req, "b")
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.Boolean(jsonv.HaveSameItems(a, b)), nil
}

func (s *Service) intersect(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	a, err := arrayMember(req, "a")
	if err != nil {
		return jsonv.Value{}, err
	}
	b, err := arrayMember(req, "b")
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.ArrayValue(jsonv.ArrayIntersection(a, b)), nil
}

func (s *Service) subtract(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	a, err := arrayMember(req, "a")
	if err != nil {
		return jsonv.Value{}, err
	}
	b, err := arrayMember(req, "b")
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.ArrayValue(jsonv.ArrayDifference(a, b)), nil
}

// find collects the values of every member called name. With an item
// member it returns the objects whose name member equals item instead.
func (s *Service) find(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	doc, err := member(req, "document")
	if err != nil {
		return jsonv.Value{}, err
	}
	name, err := stringMember(req, "name")
	if err != nil {
		return jsonv.Value{}, err
	}
	outermost, err := flag(req, "outermost")
	if err != nil {
		return jsonv.Value{}, err
	}

	if item, ok := req.Lookup("item"); ok {
		return jsonv.ArrayValue(jsonv.ObjectsWithItem(doc, name, item)), nil
	}
	if outermost {
		return jsonv.ArrayValue(jsonv.CollectOutermostByName(doc, name)), nil
	}

	return jsonv.ArrayValue(jsonv.CollectByName(doc, name)), nil
}

func (s *Service) get(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	doc, err := objectMember(req, "document")
	if err != nil {
		return jsonv.Value{}, err
	}
	path, err := pathMember(req)
	if err != nil {
		return jsonv.Value{}, err
	}

	return doc.GetPath(path)
}

func (s *Service) set(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	doc, err := objectMember(req, "document")
	if err != nil {
		return jsonv.Value{}, err
	}
	path, err := pathMember(req)
	if err != nil {
		return jsonv.Value{}, err
	}
	value, err := member(req, "value")
	if err != nil {
		return jsonv.Value{}, err
	}

	if err := doc.SetPath(path, value); err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.ObjectValue(doc), nil
}

func (s *Service) pretty(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	doc, err := member(req, "document")
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.String(jsonv.Pretty(doc)), nil
}

func (s *Service) echo(_ context.Context, req *jsonv.Object) (jsonv.Value, error) {
	return member(req, "document")
}

var errNoStore = errors.New("no document store configured")

func (s *Service) put(ctx context.Context, req *jsonv.Object) (jsonv.Value, error) {
	if s.store == nil {
		return jsonv.Value{}, errNoStore
	}
	key, err := stringMember(req, "key")
	if err != nil {
		return jsonv.Value{}, err
	}
	doc, err := member(req, "document")
	if err != nil {
		return jsonv.Value{}, err
	}

	if err := s.store.Put(ctx, key, doc); err != nil {
		return jsonv.Value{}, err
	}
	atomic.AddUint64(&s.putCount, 1)

	return jsonv.Value{}, nil
}

func (s *Service) load(ctx context.Context, req *jsonv.Object) (jsonv.Value, error) {
	if s.store == nil {
		return jsonv.Value{}, errNoStore
	}
	key, err := stringMember(req, "key")
	if err != nil {
		return jsonv.Value{}, err
	}

	doc, err := s.store.Get(ctx, key)
	if err != nil {
		return jsonv.Value{}, err
	}
	atomic.AddUint64(&s.loadCount, 1)

	// an optional path selects part of the stored document
	if raw, ok := req.Lookup("path"); ok {
		p, err := raw.AsString()
		if err != nil {
			return jsonv.Value{}, fmt.Errorf("path: %w", err)
		}
		if strings.TrimSpace(p) != "" {
			path, err := jsonv.ParsePath(p)
			if err != nil {
				return jsonv.Value{}, err
			}
			o, err := doc.AsObject()
			if err != nil {
				return jsonv.Value{}, err
			}
			return o.GetPath(path)
		}
	}

	return doc, nil
}

func (s *Service) delete(ctx context.Context, req *jsonv.Object) (jsonv.Value, error) {
	if s.store == nil {
		return jsonv.Value{}, errNoStore
	}
	key, err := stringMember(req, "key")
	if err != nil {
		return jsonv.Value{}, err
	}

	deleted, err := s.store.Delete(ctx, key)
	if err != nil {
		return jsonv.Value{}, err
	}

	return jsonv.Boolean(deleted), nil
}

func (s *Service) keys(_ context.Context, _ *jsonv.Object) (jsonv.Value, error) {
	if s.store == nil {
		return jsonv.Value{}, errNoStore
	}

	keys, err := s.store.Keys()
	if err != nil {
		return jsonv.Value{}, err
	}

	a := jsonv.NewArray()
	for _, key := range keys {
		a.Push(jsonv.String(key))
	}

	return jsonv.ArrayValue(a), nil
}
