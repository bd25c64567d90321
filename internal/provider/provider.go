// Package provider loads waste-collection datasets from external sources
// and normalizes them into the domain model. Each provider performs its
// load once, in the background, at construction; every later query shares
// the same outcome.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/binalert/bin-alert/internal/common"
	"github.com/binalert/bin-alert/internal/model"
)

// Provider produces a normalized dataset from some external raw source.
// Dataset may be called any number of times and from any goroutine; all
// callers observe the single load started at construction. A failed load
// is sticky for the provider's lifetime.
type Provider interface {
	Dataset(ctx context.Context) (*model.Dataset, error)
}

// loader is the shared pending-then-resolved outcome of one background
// load. The fields are written exactly once, before done is closed.
type loader struct {
	ds   *model.Dataset
	err  error
	done chan struct{}
}

// startLoad runs fn in the background. A positive timeout bounds the whole
// load; the zero value means no deadline, so a hung fetch blocks the load
// until the process exits.
func startLoad(timeout time.Duration, fn func(ctx context.Context) (*model.Dataset, error)) *loader {
	l := &loader{done: make(chan struct{})}
	go func() {
		defer close(l.done)
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		l.ds, l.err = fn(ctx)
		if l.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.err = fmt.Errorf("%w: %v", common.ErrLoadTimeout, l.err)
		}
	}()
	return l
}

// wait blocks until the load resolves or ctx is done.
func (l *loader) wait(ctx context.Context) (*model.Dataset, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		return l.ds, l.err
	}
}
