// Package testkit provides the ordering-assertion harness used by this
// module's own tests in place of sleeps, concretizing the job core's "test
// harness for ordering assertions" collaborator contract.
package testkit

import "sync"

// OrderRecorder records named events under a monotonic sequence counter and
// lets tests assert relative ordering between them. It is the direct
// counterpart of the teacher's reorderer.go cursor bookkeeping (buf,
// seenNoRes, next), simplified from "reorder a stream back into input order"
// to "remember the order things actually happened in": a single mutex
// guards an append-only slice plus a name→position index, since recording
// happens on whichever job goroutine reaches the callback and must be
// visible to the asserting goroutine without requiring an explicit flush.
type OrderRecorder struct {
	mu  sync.Mutex
	seq []string
	pos map[string]int
}

// NewOrderRecorder returns an empty recorder.
func NewOrderRecorder() *OrderRecorder {
	return &OrderRecorder{pos: make(map[string]int)}
}

// Record appends name to the recorded sequence. Safe for concurrent use;
// recording the same name twice keeps only its first position.
func (r *OrderRecorder) Record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pos[name]; ok {
		return
	}
	r.pos[name] = len(r.seq)
	r.seq = append(r.seq, name)
}

// Sequence returns the recorded names in the order they were first recorded.
func (r *OrderRecorder) Sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.seq))
	copy(out, r.seq)
	return out
}

// Before reports whether a was recorded strictly before b. It panics if
// either name was never recorded: in a test harness that almost always
// means the test itself is wrong, not that the ordering assertion failed.
func (r *OrderRecorder) Before(a, b string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pa, ok := r.pos[a]
	if !ok {
		panic("testkit: event " + a + " was never recorded")
	}
	pb, ok := r.pos[b]
	if !ok {
		panic("testkit: event " + b + " was never recorded")
	}
	return pa < pb
}
