package closer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

// Close drains the global hook list, so these cases run sequentially.
func TestClose(t *testing.T) {
	var calls atomic.Int32
	Add("first", func(context.Context) error {
		calls.Add(1)
		return nil
	})
	Add("second", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	if err := Close(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}

	if err := Close(context.Background()); err != nil {
		t.Fatalf("unexpected error on empty close: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("hooks ran again: calls = %d", got)
	}

	errBoom := errors.New("boom")
	Add("store", func(context.Context) error { return errBoom })

	err := Close(context.Background())
	if !errors.Is(err, errBoom) {
		t.Errorf("Close() error = %v, want %v", err, errBoom)
	}
	if err != nil && err.Error() != "close store: boom" {
		t.Errorf("error message = %q", err.Error())
	}
}
