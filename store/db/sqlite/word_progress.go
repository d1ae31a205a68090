package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func (d *DB) UpsertWordProgress(ctx context.Context, upsert *store.WordProgress) (*store.WordProgress, error) {
	stmt := `
		INSERT INTO word_progress (user_id, word_id, mastery, status, review_count, streak, last_reviewed_ts, next_review_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			mastery = EXCLUDED.mastery,
			status = EXCLUDED.status,
			review_count = EXCLUDED.review_count,
			streak = EXCLUDED.streak,
			last_reviewed_ts = EXCLUDED.last_reviewed_ts,
			next_review_ts = EXCLUDED.next_review_ts`
	if _, err := d.db.ExecContext(ctx, stmt,
		upsert.UserID,
		upsert.WordID,
		upsert.Mastery,
		upsert.Status,
		upsert.ReviewCount,
		upsert.Streak,
		upsert.LastReviewedTs,
		upsert.NextReviewTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert word progress")
	}

	return upsert, nil
}

func (d *DB) ListWordProgress(ctx context.Context, find *store.FindWordProgress) ([]*store.WordProgress, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "word_progress.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.WordID; v != nil {
		where, args = append(where, "word_progress.word_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.WordIDs; len(v) != 0 {
		inSQL := make([]string, 0, len(v))
		for _, id := range v {
			inSQL, args = append(inSQL, placeholder(len(args)+1)), append(args, id)
		}
		where = append(where, "word_progress.word_id IN ("+strings.Join(inSQL, ", ")+")")
	}
	if v := find.MasteryBelow; v != nil {
		where, args = append(where, "word_progress.mastery < "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.NextReviewBefore; v != nil {
		where, args = append(where, "word_progress.next_review_ts <= "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT user_id, word_id, mastery, status, review_count, streak, last_reviewed_ts, next_review_ts
		FROM word_progress
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY word_progress.mastery ASC, word_progress.word_id ASC`
	query = appendLimitOffset(query, find.Limit, find.Offset)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query word progress")
	}
	defer rows.Close()

	list := make([]*store.WordProgress, 0)
	for rows.Next() {
		var progress store.WordProgress
		if err := rows.Scan(
			&progress.UserID,
			&progress.WordID,
			&progress.Mastery,
			&progress.Status,
			&progress.ReviewCount,
			&progress.Streak,
			&progress.LastReviewedTs,
			&progress.NextReviewTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan word progress")
		}
		list = append(list, &progress)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
