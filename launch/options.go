package launch

import (
	"github.com/ygrebnov/job"
	"github.com/ygrebnov/job/dispatcher"
)

// config holds the defaults every launcher in this package starts from,
// mirroring the teacher's config.go/defaults.go split: a plain struct plus
// a defaultConfig() constructor, mutated by functional Options.
type config struct {
	dispatcher dispatcher.Dispatcher
	jobOpts    []job.Option
}

func defaultConfig() config {
	return config{dispatcher: dispatcher.Goroutine()}
}

// Option configures a launcher call (Launch, Async, RunBlocking).
type Option func(*config)

// WithDispatcher selects how the body is run. The default is
// dispatcher.Goroutine(); pass dispatcher.Pooled(...) to bound concurrency.
func WithDispatcher(d dispatcher.Dispatcher) Option {
	return func(c *config) { c.dispatcher = d }
}

// WithJobOptions forwards job.Options (WithMetrics, WithJobExceptionHandler,
// ...) to the underlying job.New call.
func WithJobOptions(opts ...job.Option) Option {
	return func(c *config) { c.jobOpts = append(c.jobOpts, opts...) }
}

func resolve(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
