// Package mastery turns per-question answer tallies from one quiz attempt
// into updated per-word mastery scores and review schedules.
package mastery

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/im7mortal/kmutex"
	"golang.org/x/sync/errgroup"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

const (
	// masteryReward is added to mastery when a word is answered mostly right.
	masteryReward = 0.05
	// masteryPenalty is subtracted when a word is answered mostly wrong.
	// Wrong answers lose mastery faster than right answers gain it.
	masteryPenalty = 0.2
)

// Tally accumulates answer correctness for one word within one attempt.
type Tally struct {
	Correct int
	Total   int
}

// Engine applies mastery updates. Updates for different words run
// concurrently; a per-(user, word) keyed mutex serializes read-modify-write
// on the same progress record. There is no transaction across the batch:
// partial application on crash is accepted for this workload.
type Engine struct {
	store  *store.Store
	logger *slog.Logger
	locks  *kmutex.Kmutex

	now func() time.Time
}

// NewEngine creates a mastery engine.
func NewEngine(s *store.Store, logger *slog.Logger) *Engine {
	return &Engine{
		store:  s,
		logger: logger,
		locks:  kmutex.New(),
		now:    time.Now,
	}
}

// ProcessBatch updates progress for every word in the tallies map. Word ids
// that are not well-formed, or whose word has been deleted, are skipped with
// a warning. Empty input is a no-op, never an error.
func (e *Engine) ProcessBatch(ctx context.Context, userID int32, tallies map[string]Tally) error {
	if len(tallies) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for wordID, tally := range tallies {
		wordID, tally := wordID, tally
		g.Go(func() error {
			return e.processWord(ctx, userID, wordID, tally)
		})
	}
	return g.Wait()
}

func (e *Engine) processWord(ctx context.Context, userID int32, wordID string, tally Tally) error {
	if !store.IsValidWordID(wordID) {
		e.logger.Warn("skipping malformed word id",
			slog.String("word_id", wordID), slog.Int64("user_id", int64(userID)))
		return nil
	}

	key := fmt.Sprintf("%d/%s", userID, wordID)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	word, err := e.store.GetWord(ctx, &store.FindWord{ID: &wordID})
	if err != nil {
		return err
	}
	if word == nil {
		// The word may have been deleted after the quiz was generated.
		e.logger.Warn("skipping progress update for deleted word",
			slog.String("word_id", wordID), slog.Int64("user_id", int64(userID)))
		return nil
	}

	avgCorrectness := 0.0
	if tally.Total > 0 {
		avgCorrectness = float64(tally.Correct) / float64(tally.Total)
	}
	isCorrect := avgCorrectness >= 0.5

	progress, err := e.store.GetWordProgress(ctx, &store.FindWordProgress{UserID: &userID, WordID: &wordID})
	if err != nil {
		return err
	}

	if progress != nil {
		progress.ReviewCount += tally.Total
		if isCorrect {
			progress.Streak++
		} else {
			progress.Streak = 0
		}
		if avgCorrectness > 0.5 {
			progress.Mastery = math.Min(1, progress.Mastery+masteryReward)
		} else {
			progress.Mastery = math.Max(0, progress.Mastery-masteryPenalty)
		}
	} else {
		progress = &store.WordProgress{
			UserID:      userID,
			WordID:      wordID,
			Mastery:     clamp01(avgCorrectness),
			ReviewCount: tally.Total,
		}
		if isCorrect {
			progress.Streak = 1
		}
	}

	progress.Status = store.ProgressLearning
	if progress.Mastery >= 1.0 {
		progress.Status = store.ProgressMastered
	}

	now := e.now()
	progress.LastReviewedTs = now.Unix()
	progress.NextReviewTs = now.AddDate(0, 0, reviewIntervalDays(progress.Mastery)).Unix()

	_, err = e.store.UpsertWordProgress(ctx, progress)
	return err
}

// reviewIntervalDays derives the next review interval from mastery. The
// min(1, floor(mastery*7)) form caps the interval at one day for any
// mastery above ~0.14; this mirrors the original scheduling formula rather
// than an exponential spacing curve.
func reviewIntervalDays(mastery float64) int {
	days := int(math.Floor(mastery * 7))
	if days > 1 {
		days = 1
	}
	return days
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
