package store

import (
	"context"
	"time"
)

// DayFormat is the calendar-day key format for learning stats.
// Days are bucketed in UTC.
const DayFormat = "2006-01-02"

// DayOf returns the UTC calendar-day key for a timestamp.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// LearningStats is the object representing one user's activity counters for
// one UTC calendar day. At most one record exists per (user, day); counters
// are only ever incremented, never replaced.
type LearningStats struct {
	UserID         int32
	Day            string
	QuizzesTaken   int
	WordsReviewed  int
	TotalQuestions int
	CorrectAnswers int
}

// LearningStatsDelta is the increment request for learning stats.
// The record for (user, day) is created on first activity.
type LearningStatsDelta struct {
	UserID         int32
	Day            string
	QuizzesTaken   int
	WordsReviewed  int
	TotalQuestions int
	CorrectAnswers int
}

// FindLearningStats is the find condition for learning stats.
// Records are returned in descending day order.
type FindLearningStats struct {
	UserID *int32
	Day    *string
	// DayAfter bounds the lookback, inclusive.
	DayAfter *string

	Limit *int
}

// IncrementLearningStats applies a delta to the (user, day) record, creating
// it if absent.
func (s *Store) IncrementLearningStats(ctx context.Context, delta *LearningStatsDelta) (*LearningStats, error) {
	return s.driver.IncrementLearningStats(ctx, delta)
}

// ListLearningStats lists learning stats with filter, most recent day first.
func (s *Store) ListLearningStats(ctx context.Context, find *FindLearningStats) ([]*LearningStats, error) {
	return s.driver.ListLearningStats(ctx, find)
}
