package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func (d *DB) CreateQuiz(ctx context.Context, create *store.Quiz) (*store.Quiz, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}

	fields := []string{"uid", "creator_id", "list_id", "created_ts", "title", "difficulty", "question_count"}
	args := []any{create.UID, create.CreatorID, create.ListID, create.CreatedTs, create.Title, create.Difficulty, create.QuestionCount}

	stmt := `INSERT INTO quiz (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create quiz")
	}

	return create, nil
}

func (d *DB) ListQuizzes(ctx context.Context, find *store.FindQuiz) ([]*store.Quiz, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "quiz.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "quiz.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "quiz.creator_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ListID; v != nil {
		where, args = append(where, "quiz.list_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, creator_id, list_id, created_ts, title, difficulty, question_count
		FROM quiz
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY quiz.created_ts DESC, quiz.id DESC`
	query = appendLimitOffset(query, find.Limit, find.Offset)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query quizzes")
	}
	defer rows.Close()

	list := make([]*store.Quiz, 0)
	for rows.Next() {
		var quiz store.Quiz
		if err := rows.Scan(
			&quiz.ID,
			&quiz.UID,
			&quiz.CreatorID,
			&quiz.ListID,
			&quiz.CreatedTs,
			&quiz.Title,
			&quiz.Difficulty,
			&quiz.QuestionCount,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan quiz")
		}
		list = append(list, &quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) CreateQuizQuestion(ctx context.Context, create *store.QuizQuestion) (*store.QuizQuestion, error) {
	fields := []string{"quiz_id", "word_id", "type", "prompt", "correct_answer", "options", "context", "difficulty"}
	args := []any{create.QuizID, create.WordID, create.Type, create.Prompt, create.CorrectAnswer, create.Options, create.Context, create.Difficulty}

	stmt := `INSERT INTO quiz_question (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create quiz question")
	}

	return create, nil
}

func (d *DB) ListQuizQuestions(ctx context.Context, find *store.FindQuizQuestion) ([]*store.QuizQuestion, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "quiz_question.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.QuizID; v != nil {
		where, args = append(where, "quiz_question.quiz_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, quiz_id, word_id, type, prompt, correct_answer, options, context, difficulty
		FROM quiz_question
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY quiz_question.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query quiz questions")
	}
	defer rows.Close()

	list := make([]*store.QuizQuestion, 0)
	for rows.Next() {
		var question store.QuizQuestion
		if err := rows.Scan(
			&question.ID,
			&question.QuizID,
			&question.WordID,
			&question.Type,
			&question.Prompt,
			&question.CorrectAnswer,
			&question.Options,
			&question.Context,
			&question.Difficulty,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan quiz question")
		}
		list = append(list, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
