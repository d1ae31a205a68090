package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

func (d *DB) CreateVocabularyList(ctx context.Context, create *store.VocabularyList) (*store.VocabularyList, error) {
	now := time.Now().Unix()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = now
	}

	fields := []string{"id", "creator_id", "created_ts", "updated_ts", "name", "description", "target_language", "native_language"}
	args := []any{create.ID, create.CreatorID, create.CreatedTs, create.UpdatedTs, create.Name, create.Description, create.TargetLanguage, create.NativeLanguage}

	stmt := `INSERT INTO vocabulary_list (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to create vocabulary list")
	}

	return create, nil
}

func (d *DB) ListVocabularyLists(ctx context.Context, find *store.FindVocabularyList) ([]*store.VocabularyList, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "vocabulary_list.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "vocabulary_list.creator_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, creator_id, created_ts, updated_ts, name, description, target_language, native_language
		FROM vocabulary_list
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY vocabulary_list.created_ts DESC`
	query = appendLimitOffset(query, find.Limit, find.Offset)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query vocabulary lists")
	}
	defer rows.Close()

	list := make([]*store.VocabularyList, 0)
	for rows.Next() {
		var vocabularyList store.VocabularyList
		if err := rows.Scan(
			&vocabularyList.ID,
			&vocabularyList.CreatorID,
			&vocabularyList.CreatedTs,
			&vocabularyList.UpdatedTs,
			&vocabularyList.Name,
			&vocabularyList.Description,
			&vocabularyList.TargetLanguage,
			&vocabularyList.NativeLanguage,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan vocabulary list")
		}
		list = append(list, &vocabularyList)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) DeleteVocabularyList(ctx context.Context, delete *store.DeleteVocabularyList) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM vocabulary_list WHERE id = ?", delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete vocabulary list")
	}
	return nil
}
