package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func (d *DB) CreateWord(ctx context.Context, create *store.Word) (*store.Word, error) {
	now := time.Now().Unix()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = now
	}

	fields := []string{"id", "list_id", "creator_id", "created_ts", "updated_ts", "text", "translation", "part_of_speech", "difficulty"}
	args := []any{create.ID, create.ListID, create.CreatorID, create.CreatedTs, create.UpdatedTs, create.Text, create.Translation, create.PartOfSpeech, create.Difficulty}

	stmt := `INSERT INTO word (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to create word")
	}

	return create, nil
}

func (d *DB) ListWords(ctx context.Context, find *store.FindWord) ([]*store.Word, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "word.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IDs; len(v) != 0 {
		inSQL := make([]string, 0, len(v))
		for _, id := range v {
			inSQL, args = append(inSQL, placeholder(len(args)+1)), append(args, id)
		}
		where = append(where, "word.id IN ("+strings.Join(inSQL, ", ")+")")
	}
	if v := find.ListID; v != nil {
		where, args = append(where, "word.list_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "word.creator_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, list_id, creator_id, created_ts, updated_ts, text, translation, part_of_speech, difficulty
		FROM word
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY word.created_ts ASC, word.id ASC`
	query = appendLimitOffset(query, find.Limit, find.Offset)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query words")
	}
	defer rows.Close()

	list := make([]*store.Word, 0)
	for rows.Next() {
		var word store.Word
		if err := rows.Scan(
			&word.ID,
			&word.ListID,
			&word.CreatorID,
			&word.CreatedTs,
			&word.UpdatedTs,
			&word.Text,
			&word.Translation,
			&word.PartOfSpeech,
			&word.Difficulty,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan word")
		}
		list = append(list, &word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) UpdateWord(ctx context.Context, update *store.UpdateWord) error {
	set, args := []string{}, []any{}

	if v := update.Text; v != nil {
		set, args = append(set, "text = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Translation; v != nil {
		set, args = append(set, "translation = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.PartOfSpeech; v != nil {
		set, args = append(set, "part_of_speech = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Difficulty; v != nil {
		set, args = append(set, "difficulty = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(set) == 0 {
		return nil
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())
	args = append(args, update.ID)

	stmt := `UPDATE word SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "failed to update word")
	}
	return nil
}

func (d *DB) DeleteWord(ctx context.Context, delete *store.DeleteWord) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM word WHERE id = $1", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete word")
	}
	return nil
}
