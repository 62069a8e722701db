// Command jobdemo runs a small tree of jobs to completion and prints their
// results, exercising launch.RunBlocking, launch.AsyncAll/JoinAll, and
// metrics instrumentation end to end.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ygrebnov/job"
	"github.com/ygrebnov/job/launch"
	"github.com/ygrebnov/job/metrics"
)

func main() {
	provider := metrics.NewBasicProvider()

	sum, err := launch.RunBlocking(context.Background(), func(ctx context.Context) (int, error) {
		items := []int{1, 2, 3, 4, 5}

		deferreds := launch.AsyncAll(ctx, items, func(c context.Context, n int) (int, error) {
			if n == 4 {
				return 0, errors.New("item 4 is unlucky")
			}
			return n * n, nil
		}, launch.WithJobOptions(job.WithMetrics(metrics.ForJob{Provider: provider})))

		results, err := launch.JoinAll(ctx, deferreds)
		if err != nil {
			// item 4's failure cancels the root scope: this is structured
			// concurrency, not per-item isolation. Once the root is
			// cancelled, Await on any sibling — item 4 itself and siblings
			// that had already finished included — fails with a "Parent
			// cancelled." CancelledError instead of its own result, so the
			// aggregated error lists those cancellations.
			log.Printf("root scope cancelled by a sibling failure: %v", err)
		}

		total := 0
		for _, r := range results {
			total += r
		}
		return total, nil
	}, launch.WithJobOptions(job.WithMetrics(metrics.ForJob{Provider: provider})))

	if err != nil {
		log.Fatalf("run blocking: %v", err)
	}

	active := provider.UpDownCounter("jobs_active").(*metrics.BasicUpDownCounter)
	completed := provider.Counter("jobs_completed_total").(*metrics.BasicCounter)
	lifetime := provider.Histogram("job_lifetime_seconds").(*metrics.BasicHistogram)

	// item 4's failure cancels the root scope, so this is usually far short
	// of 1+4+9+25: a cancelled sibling contributes 0, not its would-be square.
	fmt.Printf("sum of squares across surviving siblings (item 4 fails the whole scope): %d\n", sum)
	fmt.Printf("jobs_active=%d jobs_completed_total=%d job_lifetime_mean=%s\n",
		active.Snapshot(), completed.Snapshot(),
		time.Duration(lifetime.Snapshot().Mean*float64(time.Second)))
}
