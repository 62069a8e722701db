// Package job implements the lock-free Job state machine that underlies
// every coroutine-like task in this runtime: an atomically updated
// lifecycle, a parent/child cancellation link, and completion/cancellation
// callback dispatch.
//
// Constructors
//   - New(ctx, opts...): constructs a Job in the Incomplete state. If ctx
//     carries a parent Job (see FromContext), the new job subscribes to the
//     parent's cancellation.
//
// Lifecycle
// A job moves through at most three states:
//
//	Incomplete -> Cancelling -> Complete
//	Incomplete -> Complete
//
// Complete is terminal. See AbstractJob for the full state-transition
// contract.
//
// Defaults
// Unless overridden via options, a newly constructed job has no name, no
// metrics provider (metrics are no-ops), and propagates unhandled errors to
// its parent.
package job
