// Package pool provides the two worker-pool shapes dispatcher.Pooled
// chooses between, adapted from the teacher's worker-pool implementation.
package pool

// Pool hands out and reclaims reusable workers.
type Pool interface {
	// Get returns a worker from the pool.
	Get() interface{}

	// Put returns a worker back to the pool.
	Put(interface{})
}
