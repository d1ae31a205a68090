package store

import (
	"context"
)

// ProgressStatus is the learning status of a word for one user.
type ProgressStatus string

const (
	// ProgressNotStarted means the word has never been reviewed.
	ProgressNotStarted ProgressStatus = "not_started"
	// ProgressLearning means the word has been reviewed but not mastered.
	ProgressLearning ProgressStatus = "learning"
	// ProgressMastered means mastery has reached 1.0.
	ProgressMastered ProgressStatus = "mastered"
)

// WordProgress is the object representing per-(user, word) learning progress.
// One record exists per (user, word) pair; writes use upsert semantics.
type WordProgress struct {
	UserID         int32
	WordID         string
	Mastery        float64
	Status         ProgressStatus
	ReviewCount    int
	Streak         int
	LastReviewedTs int64
	NextReviewTs   int64
}

// FindWordProgress is the find condition for word progress.
type FindWordProgress struct {
	UserID  *int32
	WordID  *string
	WordIDs []string

	// MasteryBelow filters records with mastery strictly below the value.
	MasteryBelow *float64
	// NextReviewBefore filters records due for review before the timestamp.
	NextReviewBefore *int64

	Limit  *int
	Offset *int
}

// UpsertWordProgress creates or replaces the progress record for (user, word).
func (s *Store) UpsertWordProgress(ctx context.Context, upsert *WordProgress) (*WordProgress, error) {
	return s.driver.UpsertWordProgress(ctx, upsert)
}

// ListWordProgress lists word progress records with filter.
func (s *Store) ListWordProgress(ctx context.Context, find *FindWordProgress) ([]*WordProgress, error) {
	return s.driver.ListWordProgress(ctx, find)
}

// GetWordProgress gets the progress record for a single (user, word) pair.
func (s *Store) GetWordProgress(ctx context.Context, find *FindWordProgress) (*WordProgress, error) {
	list, err := s.driver.ListWordProgress(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
