package dispatcher

import (
	"context"
	"sync"

	"github.com/ygrebnov/job/dispatcher/pool"
)

// pooledDispatcher reads dispatched bodies and runs each one via a reusable
// *worker drawn from pool. It tracks in-flight bodies with a WaitGroup so
// Wait can block until they drain — the same shape as the teacher's
// dispatcher.go dispatch loop, generalized from Task[R] execution to plain
// func() bodies.
type pooledDispatcher struct {
	pool     pool.Pool
	inflight sync.WaitGroup
}

// PoolOption configures Pooled.
type PoolOption func(*poolConfig)

type poolConfig struct {
	fixedCapacity uint
}

// WithFixedCapacity caps the pool at n workers instead of the default
// unbounded (sync.Pool-backed) dynamic pool.
func WithFixedCapacity(n uint) PoolOption {
	return func(c *poolConfig) { c.fixedCapacity = n }
}

// Pooled returns a Dispatcher backed by a worker pool: dynamic (grows and
// shrinks via sync.Pool) by default, or fixed-size via WithFixedCapacity.
func Pooled(opts ...PoolOption) Dispatcher {
	cfg := poolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var p pool.Pool
	if cfg.fixedCapacity > 0 {
		p = pool.NewFixed(cfg.fixedCapacity, newWorker)
	} else {
		p = pool.NewDynamic(newWorker)
	}

	return &pooledDispatcher{pool: p}
}

func (d *pooledDispatcher) Dispatch(_ context.Context, fn func()) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		w := d.pool.Get().(*worker)
		_ = w.execute(fn)
		d.pool.Put(w)
	}()
}

// Wait blocks until every body dispatched so far has returned. It is not
// part of the Dispatcher interface; callers that need draining semantics
// (tests, graceful shutdown) type-assert for it.
func (d *pooledDispatcher) Wait() { d.inflight.Wait() }
