package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai/metrics"
	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
)

// maxRetries is the total number of attempts per operation.
const maxRetries = 3

// Retrier wraps a unit of work in a bounded retry loop with pure exponential
// backoff (no jitter) and classifies failures for observability. Every
// attempt, success or failure, emits one metric record.
type Retrier struct {
	maxRetries   int
	initialDelay time.Duration
	recorder     metrics.Recorder

	sleep func(time.Duration)
}

// NewRetrier creates a Retrier. A nil recorder discards metrics.
func NewRetrier(initialDelay time.Duration, recorder metrics.Recorder) *Retrier {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &Retrier{
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		recorder:     recorder,
		sleep:        time.Sleep,
	}
}

// Do runs fn up to maxRetries times. Between attempts it waits
// initialDelay * 2^(attempt-1). The final error carries the classified code
// of the last failure. There is no cancellation of the loop itself: once
// started it runs to success or exhaustion.
func (r *Retrier) Do(ctx context.Context, operation string, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		start := time.Now()
		result, err := fn(ctx)
		elapsed := time.Since(start)

		if err == nil {
			r.recorder.RecordAttempt(ctx, metrics.Attempt{
				Operation:  operation,
				Elapsed:    elapsed,
				RetryCount: attempt - 1,
				Success:    true,
			})
			return result, nil
		}

		code := Classify(err)
		r.recorder.RecordAttempt(ctx, metrics.Attempt{
			Operation:  operation,
			Elapsed:    elapsed,
			RetryCount: attempt - 1,
			Success:    false,
			ErrorCode:  code,
		})
		lastErr = errs.Wrap(code, fmt.Sprintf("%s failed after attempt %d", operation, attempt), err)

		if attempt < r.maxRetries {
			r.sleep(r.initialDelay * time.Duration(1<<(attempt-1)))
		}
	}
	return "", lastErr
}
