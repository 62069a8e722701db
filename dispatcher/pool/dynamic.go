package pool

import "sync"

// NewDynamic returns an unbounded pool backed by sync.Pool: it grows and
// shrinks as needed, suitable when the number of concurrently dispatched
// bodies is not known ahead of time.
func NewDynamic(newFn func() interface{}) Pool {
	return &sync.Pool{New: newFn}
}
