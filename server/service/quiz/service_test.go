package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai"
	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai/metrics"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/generation"
	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/mastery"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/streak"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
	"github.com/cindyylim/LanguageLearningApp-sub000/store/test"
)

const testUserID int32 = 42

// fakeLLM answers every prompt with a fixed response.
type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Complete(context.Context, []genai.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService(t *testing.T, llm *fakeLLM) (*Service, *store.Store) {
	t.Helper()
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)
	t.Cleanup(func() { ts.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := genai.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	gen := genai.NewClientWithService(cfg, llm, &metrics.MockRecorder{})
	t.Cleanup(gen.Close)

	service := NewService(ts,
		generation.NewClient(gen, logger),
		mastery.NewEngine(ts, logger),
		streak.NewCalculator(ts),
		logger)
	return service, ts
}

func seedList(t *testing.T, ts *store.Store, wordTexts ...string) (*store.VocabularyList, []*store.Word) {
	t.Helper()
	ctx := context.Background()
	list, err := ts.CreateVocabularyList(ctx, &store.VocabularyList{
		CreatorID:      testUserID,
		Name:           "Animals",
		TargetLanguage: "Spanish",
		NativeLanguage: "English",
	})
	require.NoError(t, err)

	words := make([]*store.Word, 0, len(wordTexts))
	for _, text := range wordTexts {
		word, err := ts.CreateWord(ctx, &store.Word{
			ListID:      list.ID,
			CreatorID:   testUserID,
			Text:        text,
			Translation: strings.ToUpper(text),
		})
		require.NoError(t, err)
		words = append(words, word)
	}
	return list, words
}

func questionsResponse(t *testing.T, questions []generation.GeneratedQuestion) string {
	t.Helper()
	raw, err := json.Marshal(questions)
	require.NoError(t, err)
	return string(raw)
}

func TestGenerateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsQuizAndQuestions", func(t *testing.T) {
		llm := &fakeLLM{}
		service, ts := newTestService(t, llm)
		list, words := seedList(t, ts, "perro", "gato")

		llm.response = questionsResponse(t, []generation.GeneratedQuestion{
			{WordID: words[0].ID, Type: "multiple_choice", Question: "What does 'perro' mean?",
				Options: []string{"PERRO", "GATO", "PATO"}, CorrectAnswer: "PERRO", Difficulty: "easy"},
			{WordID: words[1].ID, Type: "fill_blank", Question: "El ___ duerme.",
				CorrectAnswer: "gato", Difficulty: "easy"},
		})

		result, err := service.GenerateQuiz(ctx, list.ID, GenerateOptions{QuestionCount: 2, Difficulty: "easy"}, testUserID)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Quiz.UID)
		assert.Equal(t, "Animals Quiz", result.Quiz.Title)
		assert.Equal(t, 2, result.Quiz.QuestionCount)
		require.Len(t, result.Questions, 2)
		assert.Equal(t, words[0].ID, result.Questions[0].WordID)
		require.NotNil(t, result.Questions[0].Options)
		assert.JSONEq(t, `["PERRO","GATO","PATO"]`, *result.Questions[0].Options)
		assert.Nil(t, result.Questions[1].Options)
	})

	t.Run("HallucinatedWordIDIsBlanked", func(t *testing.T) {
		llm := &fakeLLM{}
		service, ts := newTestService(t, llm)
		list, words := seedList(t, ts, "perro")

		llm.response = questionsResponse(t, []generation.GeneratedQuestion{
			{WordID: "ffffffffffffffffffffffff", Type: "fill_blank", Question: "El ___ ladra.",
				CorrectAnswer: "perro", Difficulty: "easy"},
			{WordID: words[0].ID, Type: "fill_blank", Question: "Mi ___ es grande.",
				CorrectAnswer: "perro", Difficulty: "easy"},
		})

		result, err := service.GenerateQuiz(ctx, list.ID, GenerateOptions{QuestionCount: 2}, testUserID)
		require.NoError(t, err)
		require.Len(t, result.Questions, 2)
		assert.Equal(t, "", result.Questions[0].WordID)
		assert.Equal(t, words[0].ID, result.Questions[1].WordID)
	})

	t.Run("UnknownListIsNotFound", func(t *testing.T) {
		service, _ := newTestService(t, &fakeLLM{response: "[]"})

		_, err := service.GenerateQuiz(ctx, store.NewWordID(), GenerateOptions{QuestionCount: 2}, testUserID)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("OtherUsersListIsNotFound", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{response: "[]"})
		list, _ := seedList(t, ts, "perro")

		_, err := service.GenerateQuiz(ctx, list.ID, GenerateOptions{QuestionCount: 2}, testUserID+1)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("EmptyListIsNotFound", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{response: "[]"})
		list, _ := seedList(t, ts)

		_, err := service.GenerateQuiz(ctx, list.ID, GenerateOptions{QuestionCount: 2}, testUserID)
		assert.True(t, errs.IsNotFound(err))
	})
}

func generateTestQuiz(t *testing.T, service *Service, ts *store.Store) (*GeneratedQuiz, []*store.Word) {
	t.Helper()
	ctx := context.Background()
	list, words := seedList(t, ts, "perro", "gato")

	llm := &fakeLLM{response: questionsResponse(t, []generation.GeneratedQuestion{
		{WordID: words[0].ID, Type: "fill_blank", Question: "El ___ ladra.", CorrectAnswer: "perro", Difficulty: "easy"},
		{WordID: words[1].ID, Type: "fill_blank", Question: "El ___ duerme.", CorrectAnswer: "gato", Difficulty: "easy"},
	})}
	service.generator = swapLLM(t, llm)

	quiz, err := service.GenerateQuiz(ctx, list.ID, GenerateOptions{QuestionCount: 2}, testUserID)
	require.NoError(t, err)
	return quiz, words
}

// swapLLM builds a fresh generation client around the given fake backend.
func swapLLM(t *testing.T, llm *fakeLLM) *generation.Client {
	t.Helper()
	cfg := genai.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	gen := genai.NewClientWithService(cfg, llm, &metrics.MockRecorder{})
	t.Cleanup(gen.Close)
	return generation.NewClient(gen, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSubmitQuizAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("ScoresCaseAndWhitespaceInsensitively", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		quiz, words := generateTestQuiz(t, service, ts)

		result, err := service.SubmitQuizAnswers(ctx, quiz.Quiz.UID, []AnswerSubmission{
			{QuestionID: quiz.Questions[0].ID, AnswerText: "  PeRrO  "},
			{QuestionID: quiz.Questions[1].ID, AnswerText: "pato"},
		}, testUserID)
		require.NoError(t, err)

		assert.Equal(t, 0.5, result.Attempt.Score)
		assert.Equal(t, 1, result.Attempt.CorrectAnswers)
		assert.Equal(t, 2, result.Attempt.TotalQuestions)
		assert.True(t, result.Attempt.Completed)
		require.Len(t, result.Answers, 2)
		assert.True(t, result.Answers[0].Correct)
		assert.False(t, result.Answers[1].Correct)

		// Mastery engine ran for both words.
		userID := testUserID
		wordID := words[0].ID
		progress, err := ts.GetWordProgress(ctx, &store.FindWordProgress{UserID: &userID, WordID: &wordID})
		require.NoError(t, err)
		require.NotNil(t, progress)
		assert.Equal(t, 1.0, progress.Mastery)

		wordID = words[1].ID
		progress, err = ts.GetWordProgress(ctx, &store.FindWordProgress{UserID: &userID, WordID: &wordID})
		require.NoError(t, err)
		require.NotNil(t, progress)
		assert.Equal(t, 0.0, progress.Mastery)
	})

	t.Run("IncrementsLearningStats", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		quiz, _ := generateTestQuiz(t, service, ts)

		submit := func() {
			_, err := service.SubmitQuizAnswers(ctx, quiz.Quiz.UID, []AnswerSubmission{
				{QuestionID: quiz.Questions[0].ID, AnswerText: "perro"},
				{QuestionID: quiz.Questions[1].ID, AnswerText: "wrong"},
			}, testUserID)
			require.NoError(t, err)
		}
		submit()
		submit()

		userID := testUserID
		day := store.DayOf(service.now())
		records, err := ts.ListLearningStats(ctx, &store.FindLearningStats{UserID: &userID, Day: &day})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 2, records[0].QuizzesTaken)
		assert.Equal(t, 4, records[0].WordsReviewed)
		assert.Equal(t, 4, records[0].TotalQuestions)
		assert.Equal(t, 2, records[0].CorrectAnswers)
	})

	t.Run("PartialSubmissionScoresAgainstAllQuestions", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		quiz, _ := generateTestQuiz(t, service, ts)

		result, err := service.SubmitQuizAnswers(ctx, quiz.Quiz.UID, []AnswerSubmission{
			{QuestionID: quiz.Questions[0].ID, AnswerText: "perro"},
		}, testUserID)
		require.NoError(t, err)
		assert.Equal(t, 0.5, result.Attempt.Score)
		assert.Equal(t, 2, result.Attempt.TotalQuestions)
		assert.Len(t, result.Answers, 1)
	})

	t.Run("UnknownQuizIsNotFound", func(t *testing.T) {
		service, _ := newTestService(t, &fakeLLM{})

		_, err := service.SubmitQuizAnswers(ctx, "missing-uid", nil, testUserID)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("OtherUsersQuizIsNotFound", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		quiz, _ := generateTestQuiz(t, service, ts)

		_, err := service.SubmitQuizAnswers(ctx, quiz.Quiz.UID, nil, testUserID+1)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("UnknownQuestionIsNotFound", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		quiz, _ := generateTestQuiz(t, service, ts)

		_, err := service.SubmitQuizAnswers(ctx, quiz.Quiz.UID, []AnswerSubmission{
			{QuestionID: 9999, AnswerText: "perro"},
		}, testUserID)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestGetProgressSummary(t *testing.T) {
	ctx := context.Background()
	service, ts := newTestService(t, &fakeLLM{})
	quiz, words := generateTestQuiz(t, service, ts)

	_, err := service.SubmitQuizAnswers(ctx, quiz.Quiz.UID, []AnswerSubmission{
		{QuestionID: quiz.Questions[0].ID, AnswerText: "perro"},
		{QuestionID: quiz.Questions[1].ID, AnswerText: "wrong"},
	}, testUserID)
	require.NoError(t, err)

	summary, err := service.GetProgressSummary(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, len(words), summary.TotalWords)
	assert.Equal(t, 1, summary.MasteredWords)
	assert.Equal(t, 1, summary.LearningWords)
	assert.Equal(t, 0.5, summary.AverageMastery)
	assert.Equal(t, 1, summary.StreakDays)
	require.Len(t, summary.RecentAttempts, 1)
	require.Len(t, summary.DailyStats, 1)
}

func TestGetRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("NoActivity", func(t *testing.T) {
		service, _ := newTestService(t, &fakeLLM{})

		recs, err := service.GetRecommendations(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, recs.FocusAreas, 1)
		assert.Contains(t, recs.FocusAreas[0], "new words")
		assert.Empty(t, recs.RecommendedWords)
		assert.Equal(t, 10, recs.EstimatedTime)
	})

	t.Run("WeakAndDueWords", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		_, words := seedList(t, ts, "perro", "gato")

		// One weak word and one mastered-but-due word.
		_, err := ts.UpsertWordProgress(ctx, &store.WordProgress{
			UserID: testUserID, WordID: words[0].ID, Mastery: 0.2,
			Status: store.ProgressLearning, NextReviewTs: service.now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)
		_, err = ts.UpsertWordProgress(ctx, &store.WordProgress{
			UserID: testUserID, WordID: words[1].ID, Mastery: 0.9,
			Status: store.ProgressLearning, NextReviewTs: service.now().Add(-time.Hour).Unix(),
		})
		require.NoError(t, err)

		recs, err := service.GetRecommendations(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, recs.FocusAreas, 2)
		assert.Contains(t, recs.FocusAreas[0], "low mastery")
		assert.Contains(t, recs.FocusAreas[1], "due")
		assert.Len(t, recs.RecommendedWords, 2)
		assert.Equal(t, 2*2+5, recs.EstimatedTime)
		require.NotEmpty(t, recs.StudyPlan)
	})
}

func TestGenerateSentencesService(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsInvalidIDs", func(t *testing.T) {
		service, _ := newTestService(t, &fakeLLM{})

		_, err := service.GenerateSentences(ctx, []string{"", "bogus"}, testUserID)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("RejectsUnownedWords", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		_, words := seedList(t, ts, "perro")

		_, err := service.GenerateSentences(ctx, []string{words[0].ID}, testUserID+1)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("ReturnsSentences", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{})
		_, words := seedList(t, ts, "perro")

		service.generator = swapLLM(t, &fakeLLM{response: fmt.Sprintf(
			`[{"wordId": %q, "word": "perro", "sentences": ["El perro ladra.", "Mi perro es grande.", "El perro corre."]}]`,
			words[0].ID)})

		sentences, err := service.GenerateSentences(ctx, []string{words[0].ID, "bogus"}, testUserID)
		require.NoError(t, err)
		require.Len(t, sentences, 1)
		assert.Equal(t, "perro", sentences[0].Word)
		assert.Len(t, sentences[0].Sentences, 3)
	})
}

func TestGenerateVocabularyListService(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsGeneratedWords", func(t *testing.T) {
		service, ts := newTestService(t, &fakeLLM{response: `[
			{"word": "manzana", "translation": "apple", "partOfSpeech": "noun", "difficulty": "easy"},
			{"word": "uva", "translation": "grape", "partOfSpeech": "noun", "difficulty": "easy"}
		]`})

		result, err := service.GenerateVocabularyList(ctx, VocabularyListRequest{
			Topic: "fruit", Count: 2, TargetLanguage: "Spanish", NativeLanguage: "English",
		}, testUserID)
		require.NoError(t, err)
		assert.Equal(t, "fruit", result.List.Name)
		require.Len(t, result.Words, 2)
		assert.Equal(t, "manzana", result.Words[0].Text)

		listID := result.List.ID
		stored, err := ts.ListWords(ctx, &store.FindWord{ListID: &listID})
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("CreatesEmptyListOnDegradedGeneration", func(t *testing.T) {
		service, _ := newTestService(t, &fakeLLM{response: "not json"})

		result, err := service.GenerateVocabularyList(ctx, VocabularyListRequest{
			Topic: "fruit", Count: 5,
		}, testUserID)
		require.NoError(t, err)
		assert.NotNil(t, result.List)
		assert.Empty(t, result.Words)
	})
}
