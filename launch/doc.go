// Package launch provides the top-level entry points that start a job.Job
// running a caller-supplied body: Launch (fire-and-forget), Async (result-
// returning, producing a Deferred[T]), RunBlocking (drives the dispatch
// queue on the calling goroutine until the root job completes), and the
// JoinAll/AsyncAll fan-out helpers.
package launch
