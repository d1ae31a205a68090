package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
)

// OperationStats is the aggregate for a single operation name.
type OperationStats struct {
	Attempts     int64
	Successes    int64
	Retries      int64
	TotalElapsed time.Duration
	ErrorsByCode map[errs.ErrorCode]int64
}

// Aggregator is an in-memory Recorder that keeps per-operation aggregates
// and logs every attempt at debug level.
type Aggregator struct {
	mu     sync.Mutex
	logger *slog.Logger
	stats  map[string]*OperationStats
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	return &Aggregator{
		logger: logger,
		stats:  make(map[string]*OperationStats),
	}
}

// RecordAttempt implements Recorder.
func (a *Aggregator) RecordAttempt(_ context.Context, attempt Attempt) {
	a.mu.Lock()
	stats, ok := a.stats[attempt.Operation]
	if !ok {
		stats = &OperationStats{ErrorsByCode: make(map[errs.ErrorCode]int64)}
		a.stats[attempt.Operation] = stats
	}
	stats.Attempts++
	stats.Retries += int64(attempt.RetryCount)
	stats.TotalElapsed += attempt.Elapsed
	if attempt.Success {
		stats.Successes++
	} else {
		stats.ErrorsByCode[attempt.ErrorCode]++
	}
	a.mu.Unlock()

	a.logger.Debug("generation attempt",
		slog.String("operation", attempt.Operation),
		slog.Int64("duration_ms", attempt.Elapsed.Milliseconds()),
		slog.Int("retry_count", attempt.RetryCount),
		slog.Bool("success", attempt.Success),
		slog.String("error_code", string(attempt.ErrorCode)),
	)
}

// Snapshot returns a copy of the aggregates for one operation. The second
// return value is false if the operation has never been recorded.
func (a *Aggregator) Snapshot(operation string) (OperationStats, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats, ok := a.stats[operation]
	if !ok {
		return OperationStats{}, false
	}
	copied := *stats
	copied.ErrorsByCode = make(map[errs.ErrorCode]int64, len(stats.ErrorsByCode))
	for code, count := range stats.ErrorsByCode {
		copied.ErrorsByCode[code] = count
	}
	return copied, true
}
