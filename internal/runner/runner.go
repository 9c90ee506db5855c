// Package runner executes a resolved plan of bridge test cases, sequentially
// or with a bounded worker pool, and aggregates the outcome.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/bridgematrix/internal/executor"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
	"github.com/AndreyAkinshin/bridgematrix/internal/report"
)

const (
	// minWorkers prevents a zero-capacity semaphore from deadlocking the pool.
	minWorkers = 1
	// maxWorkers matches the configuration bound on concurrency.
	maxWorkers = 64
)

// Runner drives one executor over a plan.
type Runner struct {
	exec     executor.Executor
	reporter *report.Reporter
	opts     Options
}

// Options configures execution behavior.
type Options struct {
	// Concurrency is the number of cases run at once. Values below 1 mean 1.
	Concurrency int
	// RunID identifies the run. A random UUID is used when empty.
	RunID  string
	Logger *zap.Logger
}

// Result is the outcome of a completed run.
type Result struct {
	RunID      string
	Results    []model.ExecutionResult
	Summary    model.Summary
	StartedAt  time.Time
	FinishedAt time.Time
}

// New creates a Runner.
func New(exec executor.Executor, reporter *report.Reporter, opts Options) *Runner {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Concurrency = min(max(opts.Concurrency, minWorkers), maxWorkers)
	return &Runner{exec: exec, reporter: reporter, opts: opts}
}

// RunID returns the identifier attached to results.
func (r *Runner) RunID() string { return r.opts.RunID }

// Run executes every case in the plan exactly once, prints a progress line per
// case in plan order, then prints the summary.
//
// A failed case never stops the run. When ctx is cancelled the run stops,
// no summary is printed, and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, plan *Plan) (*Result, error) {
	log := r.opts.Logger
	log.Info("starting run",
		zap.Int("cases", len(plan.Cases)),
		zap.Int("concurrency", r.opts.Concurrency),
	)

	started := time.Now()
	var (
		results []model.ExecutionResult
		err     error
	)
	if r.opts.Concurrency > 1 && len(plan.Cases) > 1 {
		results, err = r.runParallel(ctx, plan.Cases)
	} else {
		results, err = r.runSequential(ctx, plan.Cases)
	}
	if err != nil {
		log.Warn("run interrupted", zap.Error(err), zap.Int("completed", len(results)))
		return nil, err
	}

	summary := report.Summarize(r.opts.RunID, results)
	r.reporter.Summary(summary)

	finished := time.Now()
	log.Info("run finished",
		zap.Int("total", summary.Total),
		zap.Int("failed", len(summary.Failures)),
		zap.Duration("elapsed", finished.Sub(started)),
	)

	return &Result{
		RunID:      r.opts.RunID,
		Results:    results,
		Summary:    summary,
		StartedAt:  started,
		FinishedAt: finished,
	}, nil
}

// runSequential executes cases one at a time in order.
func (r *Runner) runSequential(ctx context.Context, cases []model.TestCase) ([]model.ExecutionResult, error) {
	results := make([]model.ExecutionResult, 0, len(cases))
	for _, tc := range cases {
		// Early exit if context is canceled before starting the next case
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := r.exec.Execute(ctx, tc)
		if err := ctx.Err(); err != nil {
			// The client was killed by the interrupt; its status says nothing
			// about the bridge.
			return results, err
		}

		r.reporter.CaseDone(res)
		results = append(results, res)
	}
	return results, nil
}

// runParallel executes cases concurrently using a bounded worker pool.
//
// Results are stored by case index. Progress lines are released in case order
// as soon as every earlier case has completed, so output order does not depend
// on scheduling.
func (r *Runner) runParallel(ctx context.Context, cases []model.TestCase) ([]model.ExecutionResult, error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]model.ExecutionResult, len(cases))
		done    = make([]bool, len(cases))
		next    int
	)
	// Bounded parallelism via semaphore pattern: each worker acquires a slot
	// before executing and releases it when done.
	sem := make(chan struct{}, r.opts.Concurrency)

	for i, tc := range cases {
		wg.Add(1)
		go func(i int, tc model.TestCase) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			res := r.exec.Execute(ctx, tc)
			if ctx.Err() != nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			done[i] = true
			for next < len(cases) && done[next] {
				r.reporter.CaseDone(results[next])
				next++
			}
		}(i, tc)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results[:next], err
	}
	return results, nil
}
