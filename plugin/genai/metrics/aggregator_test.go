package metrics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
)

func TestAggregator_Snapshot(t *testing.T) {
	ctx := context.Background()
	a := NewAggregator(slog.New(slog.NewTextHandler(io.Discard, nil)))

	a.RecordAttempt(ctx, Attempt{Operation: "generate_quiz", Elapsed: 100 * time.Millisecond, Success: true})
	a.RecordAttempt(ctx, Attempt{Operation: "generate_quiz", Elapsed: 50 * time.Millisecond, RetryCount: 1, ErrorCode: errs.ErrCodeTimeout})
	a.RecordAttempt(ctx, Attempt{Operation: "generate_quiz", Elapsed: 50 * time.Millisecond, RetryCount: 2, ErrorCode: errs.ErrCodeTimeout})
	a.RecordAttempt(ctx, Attempt{Operation: "analyze_complexity", Elapsed: 10 * time.Millisecond, Success: true})

	stats, ok := a.Snapshot("generate_quiz")
	require.True(t, ok)
	assert.Equal(t, int64(3), stats.Attempts)
	assert.Equal(t, int64(1), stats.Successes)
	assert.Equal(t, int64(3), stats.Retries)
	assert.Equal(t, 200*time.Millisecond, stats.TotalElapsed)
	assert.Equal(t, int64(2), stats.ErrorsByCode[errs.ErrCodeTimeout])

	other, ok := a.Snapshot("analyze_complexity")
	require.True(t, ok)
	assert.Equal(t, int64(1), other.Successes)

	_, ok = a.Snapshot("never_recorded")
	assert.False(t, ok)
}

func TestAggregator_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	a := NewAggregator(slog.New(slog.NewTextHandler(io.Discard, nil)))

	a.RecordAttempt(ctx, Attempt{Operation: "op", ErrorCode: errs.ErrCodeNetwork})
	stats, ok := a.Snapshot("op")
	require.True(t, ok)

	stats.ErrorsByCode[errs.ErrCodeNetwork] = 99
	fresh, _ := a.Snapshot("op")
	assert.Equal(t, int64(1), fresh.ErrorsByCode[errs.ErrCodeNetwork])
}
