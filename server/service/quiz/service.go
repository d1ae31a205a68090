// Package quiz orchestrates quiz generation, answer scoring, mastery
// updates and daily learning statistics.
package quiz

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/server/generation"
	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/mastery"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/streak"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

// Service exposes the language-learning core operations. The surrounding
// request layer supplies an authenticated user id; this service never
// authenticates.
type Service struct {
	store     *store.Store
	generator *generation.Client
	mastery   *mastery.Engine
	streaks   *streak.Calculator
	logger    *slog.Logger

	now func() time.Time
}

// NewService creates the quiz service.
func NewService(s *store.Store, generator *generation.Client, masteryEngine *mastery.Engine, streaks *streak.Calculator, logger *slog.Logger) *Service {
	return &Service{
		store:     s,
		generator: generator,
		mastery:   masteryEngine,
		streaks:   streaks,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateOptions are the caller-supplied quiz generation parameters.
type GenerateOptions struct {
	QuestionCount int
	Difficulty    string
}

// GeneratedQuiz is the result of a quiz generation call.
type GeneratedQuiz struct {
	Quiz      *store.Quiz
	Questions []*store.QuizQuestion
}

// GenerateQuiz generates and persists a quiz for a vocabulary list. The
// list must exist and belong to the user, otherwise a NOT_FOUND error is
// returned. Generation failures after retry exhaustion are fatal.
func (s *Service) GenerateQuiz(ctx context.Context, listID string, opts GenerateOptions, userID int32) (*GeneratedQuiz, error) {
	list, err := s.store.GetVocabularyList(ctx, &store.FindVocabularyList{ID: &listID, CreatorID: &userID})
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, errs.NotFound("vocabulary list not found")
	}

	words, err := s.store.ListWords(ctx, &store.FindWord{ListID: &listID})
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errs.NotFound("vocabulary list has no words")
	}

	generated, err := s.generator.GenerateQuestions(ctx, words, generation.QuestionOptions{
		Count:          opts.QuestionCount,
		Difficulty:     opts.Difficulty,
		TargetLanguage: list.TargetLanguage,
		NativeLanguage: list.NativeLanguage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "quiz generation failed")
	}

	quiz, err := s.store.CreateQuiz(ctx, &store.Quiz{
		UID:           shortuuid.New(),
		CreatorID:     userID,
		ListID:        listID,
		Title:         list.Name + " Quiz",
		Difficulty:    opts.Difficulty,
		QuestionCount: len(generated),
	})
	if err != nil {
		return nil, err
	}

	knownWords := make(map[string]bool, len(words))
	for _, word := range words {
		knownWords[word.ID] = true
	}

	questions := make([]*store.QuizQuestion, 0, len(generated))
	for i := range generated {
		item := &generated[i]

		// Word ids the backend hallucinated are filtered before they reach
		// the store; the question itself is still kept and scored.
		wordID := item.WordID
		if !store.IsValidWordID(wordID) || !knownWords[wordID] {
			s.logger.Warn("discarding unknown word id on generated question",
				slog.String("word_id", wordID), slog.String("quiz_uid", quiz.UID))
			wordID = ""
		}

		question := &store.QuizQuestion{
			QuizID:        quiz.ID,
			WordID:        wordID,
			Type:          store.QuestionType(item.Type),
			Prompt:        item.Question,
			CorrectAnswer: item.CorrectAnswer,
			Difficulty:    item.Difficulty,
		}
		if len(item.Options) > 0 {
			raw, err := json.Marshal(item.Options)
			if err != nil {
				return nil, err
			}
			options := string(raw)
			question.Options = &options
		}
		if item.Context != "" {
			questionContext := item.Context
			question.Context = &questionContext
		}

		created, err := s.store.CreateQuizQuestion(ctx, question)
		if err != nil {
			return nil, err
		}
		questions = append(questions, created)
	}

	return &GeneratedQuiz{Quiz: quiz, Questions: questions}, nil
}

// AnswerSubmission is one submitted answer.
type AnswerSubmission struct {
	QuestionID int32
	AnswerText string
}

// ScoredAttempt is the outcome of scoring one submission.
type ScoredAttempt struct {
	Attempt *store.QuizAttempt
	Answers []*store.QuizAnswer
}

// answersMatch compares a submitted answer with the stored correct answer
// using case-insensitive, whitespace-trimmed exact matching.
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

// SubmitQuizAnswers scores a submission, runs the mastery engine, persists
// the attempt and its answers, and updates the day's learning stats. A
// missing quiz or a reference to an unknown question is a NOT_FOUND error.
func (s *Service) SubmitQuizAnswers(ctx context.Context, quizUID string, answers []AnswerSubmission, userID int32) (*ScoredAttempt, error) {
	quiz, err := s.store.GetQuiz(ctx, &store.FindQuiz{UID: &quizUID, CreatorID: &userID})
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, errs.NotFound("quiz not found")
	}

	questions, err := s.store.ListQuizQuestions(ctx, &store.FindQuizQuestion{QuizID: &quiz.ID})
	if err != nil {
		return nil, err
	}
	questionsByID := make(map[int32]*store.QuizQuestion, len(questions))
	for _, question := range questions {
		questionsByID[question.ID] = question
	}

	// Score each answer and accumulate per-word tallies.
	type scoredAnswer struct {
		submission AnswerSubmission
		correct    bool
	}
	scored := make([]scoredAnswer, 0, len(answers))
	tallies := make(map[string]mastery.Tally)
	correctCount := 0
	for _, submission := range answers {
		question, ok := questionsByID[submission.QuestionID]
		if !ok {
			return nil, errs.NotFound("quiz question not found")
		}

		correct := answersMatch(submission.AnswerText, question.CorrectAnswer)
		if correct {
			correctCount++
		}
		scored = append(scored, scoredAnswer{submission: submission, correct: correct})

		if store.IsValidWordID(question.WordID) {
			tally := tallies[question.WordID]
			tally.Total++
			if correct {
				tally.Correct++
			}
			tallies[question.WordID] = tally
		}
	}

	if err := s.mastery.ProcessBatch(ctx, userID, tallies); err != nil {
		return nil, err
	}

	totalQuestions := len(questions)
	score := 0.0
	if totalQuestions > 0 {
		score = float64(correctCount) / float64(totalQuestions)
	}

	attempt, err := s.store.CreateQuizAttempt(ctx, &store.QuizAttempt{
		QuizID:         quiz.ID,
		UserID:         userID,
		Score:          score,
		CorrectAnswers: correctCount,
		TotalQuestions: totalQuestions,
		Completed:      true,
	})
	if err != nil {
		return nil, err
	}

	persisted := make([]*store.QuizAnswer, 0, len(scored))
	for _, answer := range scored {
		created, err := s.store.CreateQuizAnswer(ctx, &store.QuizAnswer{
			AttemptID:  attempt.ID,
			QuestionID: answer.submission.QuestionID,
			AnswerText: answer.submission.AnswerText,
			Correct:    answer.correct,
		})
		if err != nil {
			return nil, err
		}
		persisted = append(persisted, created)
	}

	if _, err := s.store.IncrementLearningStats(ctx, &store.LearningStatsDelta{
		UserID:         userID,
		Day:            store.DayOf(s.now()),
		QuizzesTaken:   1,
		WordsReviewed:  len(tallies),
		TotalQuestions: totalQuestions,
		CorrectAnswers: correctCount,
	}); err != nil {
		return nil, err
	}

	return &ScoredAttempt{Attempt: attempt, Answers: persisted}, nil
}
