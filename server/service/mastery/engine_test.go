package mastery

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
	"github.com/cindyylim/LanguageLearningApp-sub000/store/test"
)

const testUserID int32 = 101

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)
	t.Cleanup(func() { ts.Close() })

	engine := NewEngine(ts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return engine, ts
}

func createTestWord(t *testing.T, ts *store.Store) *store.Word {
	t.Helper()
	ctx := context.Background()
	list, err := ts.CreateVocabularyList(ctx, &store.VocabularyList{
		CreatorID:      testUserID,
		Name:           "Basics",
		TargetLanguage: "Spanish",
		NativeLanguage: "English",
	})
	require.NoError(t, err)

	word, err := ts.CreateWord(ctx, &store.Word{
		ListID:      list.ID,
		CreatorID:   testUserID,
		Text:        "perro",
		Translation: "dog",
	})
	require.NoError(t, err)
	return word
}

func getProgress(t *testing.T, ts *store.Store, wordID string) *store.WordProgress {
	t.Helper()
	userID := testUserID
	progress, err := ts.GetWordProgress(context.Background(), &store.FindWordProgress{
		UserID: &userID,
		WordID: &wordID,
	})
	require.NoError(t, err)
	return progress
}

func TestEngine_FirstReview(t *testing.T) {
	ctx := context.Background()

	t.Run("AllCorrect", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			word.ID: {Correct: 2, Total: 2},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		require.NotNil(t, progress)
		assert.Equal(t, 1.0, progress.Mastery)
		assert.Equal(t, store.ProgressMastered, progress.Status)
		assert.Equal(t, 2, progress.ReviewCount)
		assert.Equal(t, 1, progress.Streak)
	})

	t.Run("AllWrong", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			word.ID: {Correct: 0, Total: 3},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		require.NotNil(t, progress)
		assert.Equal(t, 0.0, progress.Mastery)
		assert.Equal(t, store.ProgressLearning, progress.Status)
		assert.Equal(t, 0, progress.Streak)
	})

	t.Run("HalfCorrectSeedsMastery", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			word.ID: {Correct: 1, Total: 2},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		require.NotNil(t, progress)
		assert.Equal(t, 0.5, progress.Mastery)
		// avg of exactly 0.5 counts as correct for the streak.
		assert.Equal(t, 1, progress.Streak)
	})
}

func TestEngine_ExistingProgress(t *testing.T) {
	ctx := context.Background()
	userID := testUserID

	seed := func(t *testing.T, ts *store.Store, wordID string, mastery float64, streak int) {
		_, err := ts.UpsertWordProgress(ctx, &store.WordProgress{
			UserID:      userID,
			WordID:      wordID,
			Mastery:     mastery,
			Status:      store.ProgressLearning,
			ReviewCount: 4,
			Streak:      streak,
		})
		require.NoError(t, err)
	}

	t.Run("CorrectAddsReward", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)
		seed(t, ts, word.ID, 0.5, 2)

		err := engine.ProcessBatch(ctx, userID, map[string]Tally{
			word.ID: {Correct: 2, Total: 2},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		assert.InDelta(t, 0.55, progress.Mastery, 1e-9)
		assert.Equal(t, 6, progress.ReviewCount)
		assert.Equal(t, 3, progress.Streak)
	})

	t.Run("WrongSubtractsPenalty", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)
		seed(t, ts, word.ID, 0.5, 2)

		err := engine.ProcessBatch(ctx, userID, map[string]Tally{
			word.ID: {Correct: 0, Total: 2},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		assert.InDelta(t, 0.3, progress.Mastery, 1e-9)
		assert.Equal(t, 0, progress.Streak)
	})

	t.Run("ExactlyHalfIsCorrectButNoReward", func(t *testing.T) {
		// avg == 0.5 keeps the streak alive yet applies the penalty branch,
		// since the reward requires avg strictly above 0.5.
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)
		seed(t, ts, word.ID, 0.5, 2)

		err := engine.ProcessBatch(ctx, userID, map[string]Tally{
			word.ID: {Correct: 1, Total: 2},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		assert.InDelta(t, 0.3, progress.Mastery, 1e-9)
		assert.Equal(t, 3, progress.Streak)
	})

	t.Run("MasteryClampedAtOne", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)
		seed(t, ts, word.ID, 0.98, 5)

		err := engine.ProcessBatch(ctx, userID, map[string]Tally{
			word.ID: {Correct: 1, Total: 1},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		assert.Equal(t, 1.0, progress.Mastery)
		assert.Equal(t, store.ProgressMastered, progress.Status)
	})

	t.Run("MasteryClampedAtZero", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)
		seed(t, ts, word.ID, 0.1, 0)

		err := engine.ProcessBatch(ctx, userID, map[string]Tally{
			word.ID: {Correct: 0, Total: 1},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		assert.Equal(t, 0.0, progress.Mastery)
	})
}

func TestEngine_ReviewScheduling(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("ZeroMasteryReviewsSameDay", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			word.ID: {Correct: 0, Total: 1},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		assert.Equal(t, now.Unix(), progress.LastReviewedTs)
		assert.Equal(t, now.Unix(), progress.NextReviewTs)
	})

	t.Run("IntervalCapsAtOneDay", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			word.ID: {Correct: 1, Total: 1},
		})
		require.NoError(t, err)

		progress := getProgress(t, ts, word.ID)
		require.Equal(t, 1.0, progress.Mastery)
		assert.Equal(t, now.AddDate(0, 0, 1).Unix(), progress.NextReviewTs)
	})
}

func TestEngine_SkipsBadWords(t *testing.T) {
	ctx := context.Background()

	t.Run("MalformedID", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			"":              {Correct: 1, Total: 1},
			"not-a-word-id": {Correct: 1, Total: 1},
			word.ID:         {Correct: 1, Total: 1},
		})
		require.NoError(t, err)

		userID := testUserID
		records, err := ts.ListWordProgress(ctx, &store.FindWordProgress{UserID: &userID})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, word.ID, records[0].WordID)
	})

	t.Run("DeletedWord", func(t *testing.T) {
		engine, ts := newTestEngine(t)
		word := createTestWord(t, ts)
		require.NoError(t, ts.DeleteWord(ctx, &store.DeleteWord{ID: word.ID}))

		err := engine.ProcessBatch(ctx, testUserID, map[string]Tally{
			word.ID: {Correct: 1, Total: 1},
		})
		require.NoError(t, err)
		assert.Nil(t, getProgress(t, ts, word.ID))
	})

	t.Run("EmptyBatchIsNoop", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		assert.NoError(t, engine.ProcessBatch(ctx, testUserID, nil))
	})
}

func TestReviewIntervalDays(t *testing.T) {
	assert.Equal(t, 0, reviewIntervalDays(0))
	assert.Equal(t, 0, reviewIntervalDays(0.1))
	assert.Equal(t, 1, reviewIntervalDays(0.15))
	assert.Equal(t, 1, reviewIntervalDays(0.5))
	assert.Equal(t, 1, reviewIntervalDays(1.0))
}
