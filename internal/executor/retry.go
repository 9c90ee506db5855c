package executor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// RetryExecutor re-runs failed cases up to a fixed number of attempts.
// Only the last attempt's status is reported.
type RetryExecutor struct {
	next     Executor
	attempts int
	delay    time.Duration
	logger   *zap.Logger
}

// WithRetry wraps next with a retry policy. With attempts <= 1 it returns
// next unchanged.
func WithRetry(next Executor, attempts int, delay time.Duration, logger *zap.Logger) Executor {
	if attempts <= 1 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryExecutor{next: next, attempts: attempts, delay: delay, logger: logger}
}

// Execute runs the case until it succeeds, attempts are exhausted, or ctx is
// done. Duration accumulates across attempts.
func (r *RetryExecutor) Execute(ctx context.Context, tc model.TestCase) model.ExecutionResult {
	var (
		result model.ExecutionResult
		total  time.Duration
	)
	for attempt := 1; attempt <= r.attempts; attempt++ {
		result = r.next.Execute(ctx, tc)
		total += result.Duration
		result.Attempts = attempt
		if result.Success || attempt == r.attempts || ctx.Err() != nil {
			break
		}

		r.logger.Info("retrying failed case",
			zap.Stringer("case", tc.Key),
			zap.Int("attempt", attempt),
			zap.Int("exit_code", result.ExitCode),
			zap.Duration("delay", r.delay),
		)
		if !sleep(ctx, r.delay) {
			break
		}
	}
	result.Duration = total
	return result
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
