package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	myio "github.com/mazrean/jsonagent/internal/pkg/io"
	"github.com/mazrean/jsonagent/internal/metrics"
	"github.com/mazrean/jsonagent/jsonv"
	"github.com/mazrean/jsonagent/log"

	"golang.org/x/sync/errgroup"
)

const (
	getMetaMember     = "getMeta"
	setLogLevelMember = "setLogLevel"
)

// Handler answers one request. The returned value becomes the data of a
// success envelope; an error becomes a failure envelope.
type Handler func(ctx context.Context, req *jsonv.Object) (jsonv.Value, error)

// levelLogger is a logger whose threshold can be changed by setLogLevel.
type levelLogger interface {
	Level() log.Level
	SetLevel(log.Level)
}

// Process reads requests and writes one envelope per request, in order.
// Besides the handler it answers two built-in requests: {"getMeta":...}
// returns the meta object and {"setLogLevel":n} changes the logger level.
type Process struct {
	handler            Handler
	closeHandler       func() error
	logger             log.Logger
	name               string
	responseBufferSize int
	slowThreshold      time.Duration
	scanOptions        []jsonv.ScanOption
	durationGauge      *metrics.Gauge

	requests     atomic.Int64
	errors       atomic.Int64
	lastDuration atomic.Int64
}

// processOption holds the configuration options for a Process instance
type processOption struct {
	handler            Handler
	closeHandler       func() error
	logger             log.Logger
	name               string
	responseBufferSize int
	slowThreshold      time.Duration
	scanOptions        []jsonv.ScanOption
}

// ProcessOption defines a function type for configuring Process instances
type ProcessOption func(*processOption)

// WithHandler sets the handler for every request that is not built in
func WithHandler(handler Handler) ProcessOption {
	return func(o *processOption) {
		o.handler = handler
	}
}

// WithCloseHandler sets a handler run once when the input ends
func WithCloseHandler(handler func() error) ProcessOption {
	return func(o *processOption) {
		o.closeHandler = sync.OnceValue(handler)
	}
}

// WithLogger sets the logger. setLogLevel works only when the logger
// exposes SetLevel.
func WithLogger(logger log.Logger) ProcessOption {
	return func(o *processOption) {
		o.logger = logger
	}
}

// WithName sets the name the meta object reports the process under
func WithName(name string) ProcessOption {
	return func(o *processOption) {
		if name != "" {
			o.name = name
		}
	}
}

// WithResponseBufferSize sets the size of the response channel buffer
// The size must be positive, otherwise it will be ignored
func WithResponseBufferSize(size int) ProcessOption {
	return func(o *processOption) {
		if size > 0 {
			o.responseBufferSize = size
		}
	}
}

// WithSlowThreshold sets the duration above which a request is logged as slow.
// Zero disables the warning.
func WithSlowThreshold(d time.Duration) ProcessOption {
	return func(o *processOption) {
		if d >= 0 {
			o.slowThreshold = d
		}
	}
}

// WithScanOptions sets the options of the scanner reading each request
func WithScanOptions(options ...jsonv.ScanOption) ProcessOption {
	return func(o *processOption) {
		o.scanOptions = append(o.scanOptions, options...)
	}
}

func NewProcess(options ...ProcessOption) *Process {
	o := &processOption{
		logger:             log.DefaultLogger,
		name:               "stdio",
		responseBufferSize: 100,
		slowThreshold:      20 * time.Millisecond,
	}
	for _, option := range options {
		option(o)
	}

	return &Process{
		handler:            o.handler,
		closeHandler:       o.closeHandler,
		logger:             o.logger,
		name:               o.name,
		responseBufferSize: o.responseBufferSize,
		slowThreshold:      o.slowThreshold,
		scanOptions:        o.scanOptions,
		durationGauge:      metrics.NewGauge("request_duration"),
	}
}

// Run serves requests from stdin until it ends.
func (p *Process) Run(ctx context.Context) error {
	return p.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one request object per line from r and writes the responses
// to w. Lines that hold no object are skipped; malformed lines get a
// failure envelope.
func (p *Process) Serve(ctx context.Context, r io.Reader, w io.Writer) (err error) {
	eg, ctx := errgroup.WithContext(ctx)
	resCh := make(chan *jsonv.Object, p.responseBufferSize)
	defer func() {
		// Close response channel to signal encoder goroutine to exit
		close(resCh)

		if deferErr := p.close(); deferErr != nil {
			err = errors.Join(err, fmt.Errorf("close handler: %w", deferErr))
		}

		if deferErr := eg.Wait(); deferErr != nil {
			err = errors.Join(err, deferErr)
		}
	}()

	eg.Go(func() error {
		return p.encodeWorker(w, resCh)
	})

	err = p.decodeWorker(ctx, r, func(ctx context.Context, req *jsonv.Object, scanErr error) error {
		res := p.process(ctx, req, scanErr)

		select {
		case resCh <- res:
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("decode worker: %w", err)
	}

	return nil
}

// encodeWorker writes each response on its own line and flushes it
func (p *Process) encodeWorker(w io.Writer, ch <-chan *jsonv.Object) error {
	bw := bufio.NewWriter(w)

	for resp := range ch {
		if err := jsonv.Write(bw, jsonv.ObjectValue(resp)); err != nil {
			p.logger.Errorf("encode response(%s): %v", resp, err)
			continue
		}
		if err := bw.WriteByte('\n'); err != nil {
			p.logger.Errorf("terminate response: %v", err)
			continue
		}
		if err := bw.Flush(); err != nil {
			p.logger.Errorf("flush response(%s): %v", resp, err)
			continue
		}
	}

	return nil
}

// decodeWorker scans one line at a time and calls handler for each line that
// holds a document or a syntax error.
func (p *Process) decodeWorker(ctx context.Context, r io.Reader, handler func(context.Context, *jsonv.Object, error) error) error {
	dr := myio.NewDelimReader(myio.NewSkipCharReader(r, '\r'), '\n')

	for {
		if err := dr.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("next request: %w", err)
		}

		v, err := jsonv.NewScanner(dr, p.scanOptions...).Scan()
		if errors.Is(err, io.EOF) {
			continue
		}

		var (
			req     *jsonv.Object
			scanErr error
		)
		switch {
		case err != nil:
			var perr *jsonv.ParseError
			if !errors.As(err, &perr) {
				return fmt.Errorf("read request %d: %w", dr.Frame(), err)
			}
			scanErr = fmt.Errorf("request %d: %w", dr.Frame(), err)
		default:
			req, scanErr = v.AsObject()
			if scanErr != nil {
				scanErr = fmt.Errorf("request %d: %w", dr.Frame(), scanErr)
			}
		}

		if err := handler(ctx, req, scanErr); err != nil {
			return err
		}
	}
}

// process answers a single request and keeps the meta counters
func (p *Process) process(ctx context.Context, req *jsonv.Object, scanErr error) *jsonv.Object {
	start := time.Now()
	p.requests.Add(1)

	var (
		data jsonv.Value
		err  = scanErr
		id   jsonv.Value
	)
	if err == nil {
		id, _ = req.Lookup(idMember)
		data, err = p.handle(ctx, req)
	}

	if err != nil {
		p.errors.Add(1)
		p.logger.Warnf("%s: %v", p.name, err)
		return withID(Failure(err), id)
	}

	elapsed := time.Since(start)
	p.lastDuration.Store(elapsed.Nanoseconds())
	p.durationGauge.Set(float64(elapsed.Nanoseconds()), p.name)
	if p.slowThreshold > 0 && elapsed > p.slowThreshold {
		p.logger.Warnf("process took %.3fms", float64(elapsed.Microseconds())/1000)
		p.logger.Warnf("%s", req)
	}

	return withID(Success(data), id)
}

// handle routes built-in requests and passes the rest to the handler
func (p *Process) handle(ctx context.Context, req *jsonv.Object) (jsonv.Value, error) {
	switch {
	case req.Has(getMetaMember):
		return jsonv.ObjectValue(p.Meta()), nil
	case req.Has(setLogLevelMember):
		if err := p.setLogLevel(req); err != nil {
			return jsonv.Value{}, err
		}
		return jsonv.ObjectValue(p.Meta()), nil
	case p.handler == nil:
		return jsonv.Value{}, errors.New("no request handler")
	default:
		return p.handler(ctx, req)
	}
}

func (p *Process) setLogLevel(req *jsonv.Object) error {
	ll, ok := p.logger.(levelLogger)
	if !ok {
		return errors.New("logger does not support levels")
	}

	v, _ := req.Lookup(setLogLevelMember)
	n, err := v.AsInteger()
	if err != nil {
		return fmt.Errorf("%s: %w", setLogLevelMember, err)
	}
	if n < int64(log.Silent) || n > int64(log.Debug) {
		return fmt.Errorf("%s: level %d out of range", setLogLevelMember, n)
	}
	ll.SetLevel(log.Level(n))

	return nil
}

// Meta reports the logger level, the error count and, under the process
// name, the request count, state and last duration in nanoseconds.
func (p *Process) Meta() *jsonv.Object {
	meta := jsonv.NewObject()
	if ll, ok := p.logger.(levelLogger); ok {
		meta.Add("logLevel", jsonv.Integer(int64(ll.Level())))
	}

	port := jsonv.NewObject().
		Add("state", jsonv.String("processing")).
		Add("requests", jsonv.Integer(p.requests.Load()))
	if d := p.lastDuration.Load(); d > 0 {
		port.Add("lastDuration", jsonv.Integer(d))
	}
	meta.Add(p.name, jsonv.ObjectValue(port))

	if n := p.errors.Load(); n > 0 {
		meta.Add("errors", jsonv.Integer(n))
	}

	return meta
}

// close handles the cleanup when the Process is being shut down
func (p *Process) close() error {
	if p.closeHandler == nil {
		return nil
	}

	return p.closeHandler()
}
