package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// processSequential runs jobs one at a time.
func processSequential(ctx context.Context, jobs []Job, opts BatchOptions, limiter *rate.Limiter) ([]Result, error) {
	results := make([]Result, 0, len(jobs))

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		slog.Info("processing job",
			"job", fmt.Sprintf("%d/%d", i+1, len(jobs)),
			"name", job.Name)

		results = append(results, runJob(ctx, job, opts, limiter))
	}

	return results, nil
}
