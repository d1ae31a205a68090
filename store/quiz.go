package store

import (
	"context"
)

// QuestionType is the type of a quiz question.
type QuestionType string

const (
	// QuestionMultipleChoice is a multiple-choice question.
	QuestionMultipleChoice QuestionType = "multiple_choice"
	// QuestionFillBlank is a fill-in-the-blank question.
	QuestionFillBlank QuestionType = "fill_blank"
	// QuestionSentenceCompletion is a sentence-completion question.
	QuestionSentenceCompletion QuestionType = "sentence_completion"
)

// IsValidQuestionType reports whether t is a known question type.
func IsValidQuestionType(t string) bool {
	switch QuestionType(t) {
	case QuestionMultipleChoice, QuestionFillBlank, QuestionSentenceCompletion:
		return true
	}
	return false
}

// Quiz is the object representing a generated quiz.
// A quiz is created once per generation call and is immutable thereafter,
// except when its owning list is deleted (cascade).
type Quiz struct {
	ID            int32
	UID           string
	CreatorID     int32
	ListID        string
	CreatedTs     int64
	Title         string
	Difficulty    string
	QuestionCount int
}

// FindQuiz is the find condition for quiz.
type FindQuiz struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	ListID    *string

	Limit  *int
	Offset *int
}

// QuizQuestion is the object representing one question of a quiz.
// WordID may be empty or syntactically invalid if the backend returned a
// hallucinated id; such questions are still scored but never touch progress.
type QuizQuestion struct {
	ID            int32
	QuizID        int32
	WordID        string
	Type          QuestionType
	Prompt        string
	CorrectAnswer string
	// Options is a JSON-encoded string array for multiple-choice questions.
	Options    *string
	Context    *string
	Difficulty string
}

// FindQuizQuestion is the find condition for quiz question.
type FindQuizQuestion struct {
	ID     *int32
	QuizID *int32
}

// CreateQuiz creates a new quiz.
func (s *Store) CreateQuiz(ctx context.Context, create *Quiz) (*Quiz, error) {
	return s.driver.CreateQuiz(ctx, create)
}

// ListQuizzes lists quizzes with filter.
func (s *Store) ListQuizzes(ctx context.Context, find *FindQuiz) ([]*Quiz, error) {
	return s.driver.ListQuizzes(ctx, find)
}

// GetQuiz gets a quiz by find condition.
func (s *Store) GetQuiz(ctx context.Context, find *FindQuiz) (*Quiz, error) {
	list, err := s.driver.ListQuizzes(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// CreateQuizQuestion creates a new quiz question.
func (s *Store) CreateQuizQuestion(ctx context.Context, create *QuizQuestion) (*QuizQuestion, error) {
	return s.driver.CreateQuizQuestion(ctx, create)
}

// ListQuizQuestions lists quiz questions with filter.
func (s *Store) ListQuizQuestions(ctx context.Context, find *FindQuizQuestion) ([]*QuizQuestion, error) {
	return s.driver.ListQuizQuestions(ctx, find)
}
