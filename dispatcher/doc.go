// Package dispatcher provides the dispatcher integration job's core
// consumes but never defines itself: something that resumes a job's
// suspended body on some execution context.
//
// Constructors
//   - Goroutine(): dispatches every body on its own goroutine. Suitable for
//     the common case where bodies are short-lived or already block on I/O.
//   - Pooled(opts...): dispatches through a reusable worker pool, fixed or
//     dynamic size, adapted from the same pool package the teacher's
//     worker-pool library used to reuse its own workers.
package dispatcher
