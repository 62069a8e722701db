package metrics_test

import (
	"context"
	"testing"

	"github.com/ygrebnov/job"
	"github.com/ygrebnov/job/metrics"
)

func TestForJob_RecordsJobLifecycleInstruments(t *testing.T) {
	provider := metrics.NewBasicProvider()

	j, _ := job.New[int](context.Background(), job.WithMetrics(metrics.ForJob{Provider: provider}))

	active := provider.UpDownCounter("jobs_active").(*metrics.BasicUpDownCounter)
	if got := active.Snapshot(); got != 1 {
		t.Fatalf("expected jobs_active=1 after construction, got %d", got)
	}

	if err := j.ResumeWith(job.Success(7)); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if got := active.Snapshot(); got != 0 {
		t.Fatalf("expected jobs_active=0 after completion, got %d", got)
	}

	completed := provider.Counter("jobs_completed_total").(*metrics.BasicCounter)
	if got := completed.Snapshot(); got != 1 {
		t.Fatalf("expected jobs_completed_total=1, got %d", got)
	}
}

func TestForJob_RecordsCancellation(t *testing.T) {
	provider := metrics.NewBasicProvider()

	j, _ := job.New[int](context.Background(), job.WithMetrics(metrics.ForJob{Provider: provider}))
	j.Cancel()
	_ = j.ResumeWith(job.Success(1))

	requested := provider.Counter("jobs_cancel_requested_total").(*metrics.BasicCounter)
	if got := requested.Snapshot(); got != 1 {
		t.Fatalf("expected jobs_cancel_requested_total=1, got %d", got)
	}

	cancelled := provider.Counter("jobs_cancelled_total").(*metrics.BasicCounter)
	if got := cancelled.Snapshot(); got != 1 {
		t.Fatalf("expected jobs_cancelled_total=1, got %d", got)
	}
}
