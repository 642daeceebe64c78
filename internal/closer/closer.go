// Package closer collects shutdown hooks registered while the process runs.
package closer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

type hook struct {
	name string
	f    func(context.Context) error
}

var (
	closerLocker sync.Mutex
	hooks        []hook
)

// Add registers f to run on Close. name labels its error.
func Add(name string, f func(context.Context) error) {
	closerLocker.Lock()
	defer closerLocker.Unlock()
	hooks = append(hooks, hook{name: name, f: f})
}

// Close runs every registered hook concurrently and forgets them. The first
// failure cancels the context passed to the others.
func Close(ctx context.Context) error {
	closerLocker.Lock()
	pending := hooks
	hooks = nil
	closerLocker.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	for _, h := range pending {
		eg.Go(func() error {
			if err := h.f(ctx); err != nil {
				return fmt.Errorf("close %s: %w", h.name, err)
			}
			return nil
		})
	}

	return eg.Wait()
}
