package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mazrean/jsonagent/agent"
	"github.com/mazrean/jsonagent/bridge"
	"github.com/mazrean/jsonagent/internal/service"
	"github.com/mazrean/jsonagent/internal/store"
	"github.com/mazrean/jsonagent/jsonv"
)

type FmtCmd struct {
	File string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
}

func (c *FmtCmd) Run(g *Globals) error {
	v, err := g.readDocument(c.File)
	if err != nil {
		return err
	}

	return g.emit(v)
}

type PrettyCmd struct {
	File string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
}

func (c *PrettyCmd) Run(g *Globals) error {
	v, err := g.readDocument(c.File)
	if err != nil {
		return err
	}

	w, err := g.output()
	if err != nil {
		return err
	}

	return jsonv.WritePretty(w, v)
}

type NormaliseCmd struct {
	SortArrays bool   `kong:"short='s',help='Sort array elements too.'"`
	File       string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
}

func (c *NormaliseCmd) Run(g *Globals) error {
	v, err := g.readDocument(c.File)
	if err != nil {
		return err
	}

	return g.emit(jsonv.NormaliseValue(v, c.SortArrays))
}

type DiffCmd struct {
	A string `kong:"arg,help='Object to subtract from.'"`
	B string `kong:"arg,help='Object to subtract.'"`
}

func (c *DiffCmd) Run(g *Globals) error {
	a, err := g.readObject(c.A)
	if err != nil {
		return err
	}
	b, err := g.readObject(c.B)
	if err != nil {
		return err
	}

	return g.emit(jsonv.ObjectValue(jsonv.SetDifference(a, b)))
}

type SameItemsCmd struct {
	A string `kong:"arg,help='First object.'"`
	B string `kong:"arg,help='Second object.'"`
}

func (c *SameItemsCmd) Run(g *Globals) error {
	a, err := g.readObject(c.A)
	if err != nil {
		return err
	}
	b, err := g.readObject(c.B)
	if err != nil {
		return err
	}

	return g.emit(jsonv.Boolean(jsonv.HaveSameItems(a, b)))
}

type GetCmd struct {
	Path string `kong:"arg,help='Dot path such as a.b[2].c.'"`
	File string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
}

func (c *GetCmd) Run(g *Globals) error {
	path, err := jsonv.ParsePath(c.Path)
	if err != nil {
		return err
	}
	o, err := g.readObject(c.File)
	if err != nil {
		return err
	}

	v, err := o.GetPath(path)
	if err != nil {
		return err
	}

	return g.emit(v)
}

type SetCmd struct {
	Path  string `kong:"arg,help='Dot path such as a.b[2].c.'"`
	Value string `kong:"arg,help='Value token or document. Anything else is taken as a String.'"`
	File  string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
}

func (c *SetCmd) Run(g *Globals) error {
	path, err := jsonv.ParsePath(c.Path)
	if err != nil {
		return err
	}
	o, err := g.readObject(c.File)
	if err != nil {
		return err
	}

	if err := o.SetPath(path, parseArgument(c.Value)); err != nil {
		return err
	}

	return g.emit(jsonv.ObjectValue(o))
}

type FindCmd struct {
	Name      string `kong:"arg,help='Member name to look for.'"`
	File      string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
	Outermost bool   `kong:"help='Do not descend into matched values.'"`
	Item      string `kong:"help='Print the objects whose member equals this value instead.'"`
}

func (c *FindCmd) Run(g *Globals) error {
	v, err := g.readDocument(c.File)
	if err != nil {
		return err
	}

	var found *jsonv.Array
	switch {
	case c.Item != "":
		found = jsonv.ObjectsWithItem(v, c.Name, parseArgument(c.Item))
	case c.Outermost:
		found = jsonv.CollectOutermostByName(v, c.Name)
	default:
		found = jsonv.CollectByName(v, c.Name)
	}

	return g.emit(jsonv.ArrayValue(found))
}

type ConvertCmd struct {
	From string `kong:"short='f',default='jsonv',enum='jsonv,json,cbor,yaml,proto',help='Input format.'"`
	To   string `kong:"short='t',default='json',enum='jsonv,pretty,json,cbor,yaml,proto',help='Output format.'"`
	File string `kong:"arg,optional,help='Input file. Reads stdin when omitted or -.'"`
}

func (c *ConvertCmd) Run(g *Globals) error {
	v, err := c.decode(g)
	if err != nil {
		return err
	}

	data, err := encode(c.To, v)
	if err != nil {
		return err
	}

	w, err := g.output()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func (c *ConvertCmd) decode(g *Globals) (jsonv.Value, error) {
	if c.From == "jsonv" {
		return g.readDocument(c.File)
	}

	data, err := g.readAll(c.File)
	if err != nil {
		return jsonv.Value{}, err
	}

	return decode(c.From, data)
}

func decode(format string, data []byte) (jsonv.Value, error) {
	switch format {
	case "jsonv":
		return jsonv.Scan(bytes.NewReader(data))
	case "json":
		return bridge.UnmarshalJSON(data)
	case "cbor":
		return bridge.UnmarshalCBOR(data)
	case "yaml":
		return bridge.UnmarshalYAML(data)
	case "proto":
		return bridge.UnmarshalProto(data)
	default:
		return jsonv.Value{}, fmt.Errorf("unknown input format: %s", format)
	}
}

func encode(format string, v jsonv.Value) ([]byte, error) {
	switch format {
	case "jsonv":
		var buf bytes.Buffer
		if err := jsonv.Write(&buf, v); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case "pretty":
		return []byte(jsonv.Pretty(v)), nil
	case "json":
		var buf bytes.Buffer
		if err := bridge.EncodeJSON(&buf, v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "cbor":
		return bridge.MarshalCBOR(v)
	case "yaml":
		return bridge.MarshalYAML(v)
	case "proto":
		return bridge.MarshalProto(v)
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

type ServeCmd struct {
	StoreDir           string        `kong:"help='Directory for stored documents. Defaults to the user cache directory.',env='JSONAGENT_STORE_DIR'"`
	NoStore            bool          `kong:"help='Disable the put, load, delete and keys operations.'"`
	Name               string        `kong:"default='stdio',help='Name reported by getMeta.'"`
	ResponseBufferSize int           `kong:"default='100',help='Number of responses buffered before writing blocks.'"`
	SlowThreshold      time.Duration `kong:"default='20ms',help='Requests slower than this are logged.'"`
	CompressionLevel   int           `kong:"default='3',help='zstd level for stored documents.'"`
}

func (c *ServeCmd) Run(g *Globals, ctx context.Context) error {
	var st *store.Store
	if !c.NoStore {
		dir, err := c.storeDir()
		if err != nil {
			return err
		}

		st, err = store.New(g.Logger, dir, store.WithCompressionLevel(c.CompressionLevel))
		if err != nil {
			return fmt.Errorf("create store: %w", err)
		}
	}

	svc := service.New(g.Logger, st)
	g.Logger.Debugf("operations: %s", strings.Join(svc.Ops(), ","))

	p := agent.NewProcess(
		agent.WithHandler(svc.Handle),
		agent.WithCloseHandler(svc.Close),
		agent.WithLogger(g.Logger),
		agent.WithName(c.Name),
		agent.WithResponseBufferSize(c.ResponseBufferSize),
		agent.WithSlowThreshold(c.SlowThreshold),
		agent.WithScanOptions(jsonv.WithMaxDepth(g.MaxDepth)),
	)

	return p.Run(ctx)
}

func (c *ServeCmd) storeDir() (string, error) {
	if c.StoreDir != "" {
		return c.StoreDir, nil
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get user cache directory: %w", err)
	}

	return filepath.Join(cacheDir, "jsonagent"), nil
}
