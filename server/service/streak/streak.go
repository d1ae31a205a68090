// Package streak computes the consecutive-day learning streak from a user's
// daily activity records.
package streak

import (
	"context"
	"time"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

// lookbackDays bounds how far back the calculator reads activity records.
const lookbackDays = 365

// Calculator derives the current streak from LearningStats records.
// All day bucketing uses UTC, matching the store's day keys.
type Calculator struct {
	store *store.Store

	now func() time.Time
}

// NewCalculator creates a streak calculator.
func NewCalculator(s *store.Store) *Calculator {
	return &Calculator{store: s, now: time.Now}
}

// Current returns the user's current consecutive-day streak. A streak is
// alive only if the most recent activity is today or yesterday (UTC); any
// gap larger than one day ends the count.
func (c *Calculator) Current(ctx context.Context, userID int32) (int, error) {
	now := c.now().UTC()
	dayAfter := store.DayOf(now.AddDate(0, 0, -lookbackDays))
	limit := lookbackDays

	records, err := c.store.ListLearningStats(ctx, &store.FindLearningStats{
		UserID:   &userID,
		DayAfter: &dayAfter,
		Limit:    &limit,
	})
	if err != nil {
		return 0, err
	}

	days := make([]time.Time, 0, len(records))
	for _, record := range records {
		day, err := time.ParseInLocation(store.DayFormat, record.Day, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	return FromDays(days, now), nil
}

// FromDays computes the streak from midnight-normalized days in descending
// order. Exact duplicates are skipped; the walk stops at the first gap
// larger than one day.
func FromDays(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := now.UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)

	latest := days[0]
	if !latest.Equal(today) && !latest.Equal(yesterday) {
		// Activity lapsed.
		return 0
	}

	streak := 1
	previous := latest
	for _, day := range days[1:] {
		if day.Equal(previous) {
			continue
		}
		if previous.Sub(day) == 24*time.Hour {
			streak++
			previous = day
			continue
		}
		break
	}
	return streak
}
