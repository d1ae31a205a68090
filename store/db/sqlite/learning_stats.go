package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func (d *DB) IncrementLearningStats(ctx context.Context, delta *store.LearningStatsDelta) (*store.LearningStats, error) {
	stmt := `
		INSERT INTO learning_stats (user_id, day, quizzes_taken, words_reviewed, total_questions, correct_answers)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			quizzes_taken = learning_stats.quizzes_taken + EXCLUDED.quizzes_taken,
			words_reviewed = learning_stats.words_reviewed + EXCLUDED.words_reviewed,
			total_questions = learning_stats.total_questions + EXCLUDED.total_questions,
			correct_answers = learning_stats.correct_answers + EXCLUDED.correct_answers
		RETURNING quizzes_taken, words_reviewed, total_questions, correct_answers`

	stats := store.LearningStats{
		UserID: delta.UserID,
		Day:    delta.Day,
	}
	if err := d.db.QueryRowContext(ctx, stmt,
		delta.UserID,
		delta.Day,
		delta.QuizzesTaken,
		delta.WordsReviewed,
		delta.TotalQuestions,
		delta.CorrectAnswers,
	).Scan(
		&stats.QuizzesTaken,
		&stats.WordsReviewed,
		&stats.TotalQuestions,
		&stats.CorrectAnswers,
	); err != nil {
		return nil, errors.Wrap(err, "failed to increment learning stats")
	}

	return &stats, nil
}

func (d *DB) ListLearningStats(ctx context.Context, find *store.FindLearningStats) ([]*store.LearningStats, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "learning_stats.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Day; v != nil {
		where, args = append(where, "learning_stats.day = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DayAfter; v != nil {
		where, args = append(where, "learning_stats.day >= "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT user_id, day, quizzes_taken, words_reviewed, total_questions, correct_answers
		FROM learning_stats
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY learning_stats.day DESC`
	query = appendLimitOffset(query, find.Limit, nil)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query learning stats")
	}
	defer rows.Close()

	list := make([]*store.LearningStats, 0)
	for rows.Next() {
		var stats store.LearningStats
		if err := rows.Scan(
			&stats.UserID,
			&stats.Day,
			&stats.QuizzesTaken,
			&stats.WordsReviewed,
			&stats.TotalQuestions,
			&stats.CorrectAnswers,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan learning stats")
		}
		list = append(list, &stats)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
