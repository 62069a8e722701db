package job

import "context"

// MetricsProvider is the subset of metrics.Provider this package consumes.
// Declared locally so job does not import the metrics package directly;
// callers wrap a metrics.Provider (such as *metrics.BasicProvider or
// metrics.NoopProvider) in metrics.ForJob, or pass any other implementation
// satisfying this shape.
type MetricsProvider interface {
	Counter(name string) Counter
	UpDownCounter(name string) UpDownCounter
	Histogram(name string) Histogram
}

// Counter records monotonic counts.
type Counter interface{ Add(n int64) }

// UpDownCounter records values that can move up or down.
type UpDownCounter interface{ Add(n int64) }

// Histogram records a distribution of float64 measurements.
type Histogram interface{ Record(v float64) }

// config holds the options New assembles before constructing a job.
// Centralizing defaults in one function mirrors the teacher's
// defaultConfig pattern.
type config struct {
	metrics              MetricsProvider
	onUnhandledException func(ctx context.Context, err error) bool
}

func defaultConfig() config {
	return config{}
}

// Option configures a job at construction time.
type Option func(*config)

// WithMetrics attaches a metrics provider. Instruments are created lazily
// and reused by name; passing nil is equivalent to omitting the option.
func WithMetrics(p MetricsProvider) Option {
	return func(c *config) { c.metrics = p }
}

// WithJobExceptionHandler overrides handleJobException for this job only,
// the mechanism by which a top-level launcher variant (e.g.
// launch.RunBlocking's root job) delivers otherwise-unhandled errors to a
// context-provided ExceptionHandler instead of silently discarding them.
func WithJobExceptionHandler(fn func(ctx context.Context, err error) bool) Option {
	return func(c *config) { c.onUnhandledException = fn }
}
