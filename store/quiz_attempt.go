package store

import (
	"context"
)

// QuizAttempt is the object representing one quiz submission.
type QuizAttempt struct {
	ID             int32
	QuizID         int32
	UserID         int32
	CreatedTs      int64
	Score          float64
	CorrectAnswers int
	TotalQuestions int
	Completed      bool
}

// FindQuizAttempt is the find condition for quiz attempt.
type FindQuizAttempt struct {
	ID     *int32
	QuizID *int32
	UserID *int32

	Limit  *int
	Offset *int
}

// QuizAnswer is the object representing one submitted answer.
type QuizAnswer struct {
	ID         int32
	AttemptID  int32
	QuestionID int32
	AnswerText string
	Correct    bool
}

// FindQuizAnswer is the find condition for quiz answer.
type FindQuizAnswer struct {
	AttemptID *int32
}

// CreateQuizAttempt creates a new quiz attempt.
func (s *Store) CreateQuizAttempt(ctx context.Context, create *QuizAttempt) (*QuizAttempt, error) {
	return s.driver.CreateQuizAttempt(ctx, create)
}

// ListQuizAttempts lists quiz attempts with filter, most recent first.
func (s *Store) ListQuizAttempts(ctx context.Context, find *FindQuizAttempt) ([]*QuizAttempt, error) {
	return s.driver.ListQuizAttempts(ctx, find)
}

// CreateQuizAnswer creates a new quiz answer.
func (s *Store) CreateQuizAnswer(ctx context.Context, create *QuizAnswer) (*QuizAnswer, error) {
	return s.driver.CreateQuizAnswer(ctx, create)
}

// ListQuizAnswers lists quiz answers with filter.
func (s *Store) ListQuizAnswers(ctx context.Context, find *FindQuizAnswer) ([]*QuizAnswer, error) {
	return s.driver.ListQuizAnswers(ctx, find)
}
