package agent

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/mazrean/jsonagent/jsonv"
)

// Client sends requests to a Process and reads its envelopes.
type Client struct {
	locker  sync.Mutex
	w       *bufio.Writer
	scanner *jsonv.Scanner
}

func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{
		w:       bufio.NewWriter(w),
		scanner: jsonv.NewScanner(r),
	}
}

// Send writes req as one line and waits for the matching response. It
// returns the response data, or a *ProcessingError if the peer failed.
func (c *Client) Send(req *jsonv.Object) (jsonv.Value, error) {
	c.locker.Lock()
	defer c.locker.Unlock()

	if err := jsonv.Write(c.w, jsonv.ObjectValue(req)); err != nil {
		return jsonv.Value{}, fmt.Errorf("write request: %w", err)
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return jsonv.Value{}, fmt.Errorf("write request: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return jsonv.Value{}, fmt.Errorf("flush request: %w", err)
	}

	v, err := c.scanner.Scan()
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("read response: %w", err)
	}
	resp, err := v.AsObject()
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("read response: %w", err)
	}

	return Unwrap(resp)
}

// Meta asks the peer for its meta object.
func (c *Client) Meta() (*jsonv.Object, error) {
	v, err := c.Send(jsonv.NewObject().Add(getMetaMember, jsonv.Boolean(true)))
	if err != nil {
		return nil, err
	}

	return v.AsObject()
}

// SetLogLevel changes the peer's log level.
func (c *Client) SetLogLevel(level int) error {
	_, err := c.Send(jsonv.NewObject().Add(setLogLevelMember, jsonv.Integer(int64(level))))
	return err
}
