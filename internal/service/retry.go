package service

import (
	"context"
	"log/slog"
	"time"
)

// retryState is the explicit write-retry state machine. Transitions are
// driven by store-call outcomes, which keeps the attempt budget and the
// terminal-class policy testable on their own.
type retryState int

const (
	stateAttempting retryState = iota
	stateBackoff
	stateSuccess
	stateFailedTerminal
	stateFailedExhausted
)

// retryPolicy holds the attempt budget and backoff schedule for store
// writes: maxAttempts total, with a delay of baseDelay << (attempt-1)
// after each failed attempt. No jitter, no cap beyond the budget.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: 3,
		baseDelay:   time.Second,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run executes op under the policy. Errors for which terminal reports
// true abort immediately without retry; all others are retried until
// the attempt budget is exhausted, surfacing the last observed error.
// Every attempt outcome is logged with its attempt number.
func (p retryPolicy) run(ctx context.Context, name string, op func(ctx context.Context) error, terminal func(error) bool) error {
	state := stateAttempting
	attempt := 1
	var lastErr error

	for {
		switch state {
		case stateAttempting:
			err := op(ctx)
			if err == nil {
				state = stateSuccess
				break
			}
			if terminal(err) {
				lastErr = err
				state = stateFailedTerminal
				break
			}
			lastErr = err
			state = stateBackoff

		case stateBackoff:
			delay := p.baseDelay << (attempt - 1)
			slog.Warn(name+" failed, backing off",
				"attempt", attempt,
				"max_attempts", p.maxAttempts,
				"backoff", delay,
				"error", lastErr,
			)
			if err := p.sleep(ctx, delay); err != nil {
				return lastErr
			}
			if attempt >= p.maxAttempts {
				state = stateFailedExhausted
				break
			}
			attempt++
			state = stateAttempting

		case stateSuccess:
			slog.Info(name+" succeeded", "attempt", attempt)
			return nil

		case stateFailedTerminal:
			slog.Error(name+" failed terminally, not retrying", "attempt", attempt, "error", lastErr)
			return lastErr

		case stateFailedExhausted:
			slog.Error(name+" exhausted retries", "attempts", p.maxAttempts, "error", lastErr)
			return lastErr
		}
	}
}
