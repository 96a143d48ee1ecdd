package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// processConcurrent runs jobs with bounded parallelism. Transcription calls
// share the rate limiter across all jobs.
func processConcurrent(ctx context.Context, jobs []Job, opts BatchOptions, limiter *rate.Limiter) ([]Result, error) {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	slog.Info("starting concurrent processing",
		"jobs", len(jobs),
		"max_concurrent", maxConcurrent,
		"rate_limit_rpm", opts.RateLimitPerMin)

	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			slog.Info("starting job", "job", fmt.Sprintf("%d/%d", i+1, len(jobs)), "name", job.Name)
			results[i] = runJob(gctx, job, opts, limiter)

			// Job failures are reported in the result; only cancellation stops the batch.
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return compact(results), err
	}
	return results, nil
}

// compact drops the slots of jobs that never started.
func compact(results []Result) []Result {
	out := results[:0]
	for _, r := range results {
		if r.RunID != "" || r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
