package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	// VocabularyList model related methods.
	CreateVocabularyList(ctx context.Context, create *VocabularyList) (*VocabularyList, error)
	ListVocabularyLists(ctx context.Context, find *FindVocabularyList) ([]*VocabularyList, error)
	DeleteVocabularyList(ctx context.Context, delete *DeleteVocabularyList) error

	// Word model related methods.
	CreateWord(ctx context.Context, create *Word) (*Word, error)
	ListWords(ctx context.Context, find *FindWord) ([]*Word, error)
	UpdateWord(ctx context.Context, update *UpdateWord) error
	DeleteWord(ctx context.Context, delete *DeleteWord) error

	// WordProgress model related methods.
	UpsertWordProgress(ctx context.Context, upsert *WordProgress) (*WordProgress, error)
	ListWordProgress(ctx context.Context, find *FindWordProgress) ([]*WordProgress, error)

	// Quiz model related methods.
	CreateQuiz(ctx context.Context, create *Quiz) (*Quiz, error)
	ListQuizzes(ctx context.Context, find *FindQuiz) ([]*Quiz, error)
	CreateQuizQuestion(ctx context.Context, create *QuizQuestion) (*QuizQuestion, error)
	ListQuizQuestions(ctx context.Context, find *FindQuizQuestion) ([]*QuizQuestion, error)

	// QuizAttempt model related methods.
	CreateQuizAttempt(ctx context.Context, create *QuizAttempt) (*QuizAttempt, error)
	ListQuizAttempts(ctx context.Context, find *FindQuizAttempt) ([]*QuizAttempt, error)
	CreateQuizAnswer(ctx context.Context, create *QuizAnswer) (*QuizAnswer, error)
	ListQuizAnswers(ctx context.Context, find *FindQuizAnswer) ([]*QuizAnswer, error)

	// LearningStats model related methods.
	IncrementLearningStats(ctx context.Context, delta *LearningStatsDelta) (*LearningStats, error)
	ListLearningStats(ctx context.Context, find *FindLearningStats) ([]*LearningStats, error)
}
