// Package metrics records per-attempt metrics for external generation calls.
package metrics

import (
	"context"
	"time"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
)

// Attempt is one structured metric record. Every attempt against the
// external backend, success or failure, produces one.
type Attempt struct {
	Operation  string
	Elapsed    time.Duration
	RetryCount int
	Success    bool
	ErrorCode  errs.ErrorCode
}

// Recorder receives attempt records.
type Recorder interface {
	RecordAttempt(ctx context.Context, attempt Attempt)
}

// NopRecorder discards all records.
type NopRecorder struct{}

// RecordAttempt implements Recorder.
func (NopRecorder) RecordAttempt(context.Context, Attempt) {}
