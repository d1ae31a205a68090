package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func (d *DB) CreateQuizAttempt(ctx context.Context, create *store.QuizAttempt) (*store.QuizAttempt, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}

	fields := []string{"quiz_id", "user_id", "created_ts", "score", "correct_answers", "total_questions", "completed"}
	args := []any{create.QuizID, create.UserID, create.CreatedTs, create.Score, create.CorrectAnswers, create.TotalQuestions, create.Completed}

	stmt := `INSERT INTO quiz_attempt (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create quiz attempt")
	}

	return create, nil
}

func (d *DB) ListQuizAttempts(ctx context.Context, find *store.FindQuizAttempt) ([]*store.QuizAttempt, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "quiz_attempt.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.QuizID; v != nil {
		where, args = append(where, "quiz_attempt.quiz_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "quiz_attempt.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, quiz_id, user_id, created_ts, score, correct_answers, total_questions, completed
		FROM quiz_attempt
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY quiz_attempt.created_ts DESC, quiz_attempt.id DESC`
	query = appendLimitOffset(query, find.Limit, find.Offset)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query quiz attempts")
	}
	defer rows.Close()

	list := make([]*store.QuizAttempt, 0)
	for rows.Next() {
		var attempt store.QuizAttempt
		if err := rows.Scan(
			&attempt.ID,
			&attempt.QuizID,
			&attempt.UserID,
			&attempt.CreatedTs,
			&attempt.Score,
			&attempt.CorrectAnswers,
			&attempt.TotalQuestions,
			&attempt.Completed,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan quiz attempt")
		}
		list = append(list, &attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) CreateQuizAnswer(ctx context.Context, create *store.QuizAnswer) (*store.QuizAnswer, error) {
	fields := []string{"attempt_id", "question_id", "answer_text", "correct"}
	args := []any{create.AttemptID, create.QuestionID, create.AnswerText, create.Correct}

	stmt := `INSERT INTO quiz_answer (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create quiz answer")
	}

	return create, nil
}

func (d *DB) ListQuizAnswers(ctx context.Context, find *store.FindQuizAnswer) ([]*store.QuizAnswer, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.AttemptID; v != nil {
		where, args = append(where, "quiz_answer.attempt_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, attempt_id, question_id, answer_text, correct
		FROM quiz_answer
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY quiz_answer.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query quiz answers")
	}
	defer rows.Close()

	list := make([]*store.QuizAnswer, 0)
	for rows.Next() {
		var answer store.QuizAnswer
		if err := rows.Scan(
			&answer.ID,
			&answer.AttemptID,
			&answer.QuestionID,
			&answer.AnswerText,
			&answer.Correct,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan quiz answer")
		}
		list = append(list, &answer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
