// Package agent exchanges jsonv documents with a peer, one object per line.
//
// Every response is an envelope: {"ok":true,"data":...} on success, where
// data is left out when there is nothing to return, or
// {"ok":false,"error":"..."} on failure.
package agent

import (
	"errors"
	"fmt"

	"github.com/mazrean/jsonagent/jsonv"
)

const (
	okMember    = "ok"
	dataMember  = "data"
	errorMember = "error"
	idMember    = "id"
)

// ErrNotEnvelope is returned by Unwrap for objects without a boolean ok member.
var ErrNotEnvelope = errors.New("agent: response is not an envelope")

// ProcessingError is a failure reported by the peer.
type ProcessingError struct {
	Message string
}

func (e *ProcessingError) Error() string {
	return "agent: processing failed: " + e.Message
}

// Success wraps data in a success envelope. Unset data and empty objects are
// left out.
func Success(data jsonv.Value) *jsonv.Object {
	resp := jsonv.NewObject().Add(okMember, jsonv.Boolean(true))
	if isEmpty(data) {
		return resp
	}

	return resp.Add(dataMember, data)
}

func isEmpty(v jsonv.Value) bool {
	if !v.IsSet() {
		return true
	}
	o, err := v.AsObject()
	return err == nil && o.Empty()
}

// Failure wraps err in a failure envelope.
func Failure(err error) *jsonv.Object {
	return jsonv.NewObject().
		Add(okMember, jsonv.Boolean(false)).
		Add(errorMember, jsonv.String(err.Error()))
}

// Unwrap returns the data of a success envelope, or an empty object when it
// has none. A failure envelope yields a *ProcessingError.
func Unwrap(resp *jsonv.Object) (jsonv.Value, error) {
	okValue, found := resp.Lookup(okMember)
	if !found {
		return jsonv.Value{}, fmt.Errorf("%w: missing %q", ErrNotEnvelope, okMember)
	}
	ok, err := okValue.AsBoolean()
	if err != nil {
		return jsonv.Value{}, fmt.Errorf("%w: %w", ErrNotEnvelope, err)
	}

	if !ok {
		perr := &ProcessingError{}
		if msg, found := resp.Lookup(errorMember); found {
			if s, err := msg.AsString(); err == nil {
				perr.Message = s
			} else {
				perr.Message = msg.String()
			}
		}
		return jsonv.Value{}, perr
	}

	if data, found := resp.Lookup(dataMember); found {
		return data, nil
	}

	return jsonv.ObjectValue(jsonv.NewObject()), nil
}

// withID returns resp with an id member in front.
func withID(resp *jsonv.Object, id jsonv.Value) *jsonv.Object {
	if !id.IsSet() {
		return resp
	}

	out := jsonv.NewObject(jsonv.Pair(idMember, id))
	for _, p := range resp.Pairs() {
		out.AddPair(p)
	}

	return out
}
