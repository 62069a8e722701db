package metrics

import "github.com/ygrebnov/job"

// ForJob adapts a Provider to job.MetricsProvider's fixed-arity instrument
// accessors (job declares its own minimal interfaces locally so it never
// imports this package directly; ForJob is the bridge callers pass to
// job.WithMetrics).
type ForJob struct {
	Provider Provider
}

func (f ForJob) Counter(name string) job.Counter {
	return jobCounter{f.Provider.Counter(name)}
}

func (f ForJob) UpDownCounter(name string) job.UpDownCounter {
	return jobUpDownCounter{f.Provider.UpDownCounter(name)}
}

func (f ForJob) Histogram(name string) job.Histogram {
	return jobHistogram{f.Provider.Histogram(name)}
}

type jobCounter struct{ c Counter }

func (j jobCounter) Add(n int64) { j.c.Add(n) }

type jobUpDownCounter struct{ u UpDownCounter }

func (j jobUpDownCounter) Add(n int64) { j.u.Add(n) }

type jobHistogram struct{ h Histogram }

func (j jobHistogram) Record(v float64) { j.h.Record(v) }
