package postgres

import (
	"context"
	"database/sql"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/cindyylim/LanguageLearningApp-sub000/internal/profile"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL database using the DSN from the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const latestSchema = `
CREATE TABLE IF NOT EXISTS vocabulary_list (
	id TEXT PRIMARY KEY,
	creator_id INTEGER NOT NULL,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	target_language TEXT NOT NULL DEFAULT '',
	native_language TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS word (
	id TEXT PRIMARY KEY,
	list_id TEXT NOT NULL REFERENCES vocabulary_list (id) ON DELETE CASCADE,
	creator_id INTEGER NOT NULL,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL,
	text TEXT NOT NULL,
	translation TEXT NOT NULL,
	part_of_speech TEXT NOT NULL DEFAULT '',
	difficulty TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS word_progress (
	user_id INTEGER NOT NULL,
	word_id TEXT NOT NULL REFERENCES word (id) ON DELETE CASCADE,
	mastery DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'not_started',
	review_count INTEGER NOT NULL DEFAULT 0,
	streak INTEGER NOT NULL DEFAULT 0,
	last_reviewed_ts BIGINT NOT NULL DEFAULT 0,
	next_review_ts BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (user_id, word_id)
);

CREATE TABLE IF NOT EXISTS quiz (
	id SERIAL PRIMARY KEY,
	uid TEXT NOT NULL UNIQUE,
	creator_id INTEGER NOT NULL,
	list_id TEXT NOT NULL REFERENCES vocabulary_list (id) ON DELETE CASCADE,
	created_ts BIGINT NOT NULL,
	title TEXT NOT NULL,
	difficulty TEXT NOT NULL DEFAULT '',
	question_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS quiz_question (
	id SERIAL PRIMARY KEY,
	quiz_id INTEGER NOT NULL REFERENCES quiz (id) ON DELETE CASCADE,
	word_id TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	prompt TEXT NOT NULL,
	correct_answer TEXT NOT NULL,
	options TEXT,
	context TEXT,
	difficulty TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS quiz_attempt (
	id SERIAL PRIMARY KEY,
	quiz_id INTEGER NOT NULL REFERENCES quiz (id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL,
	created_ts BIGINT NOT NULL,
	score DOUBLE PRECISION NOT NULL DEFAULT 0,
	correct_answers INTEGER NOT NULL DEFAULT 0,
	total_questions INTEGER NOT NULL DEFAULT 0,
	completed BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS quiz_answer (
	id SERIAL PRIMARY KEY,
	attempt_id INTEGER NOT NULL REFERENCES quiz_attempt (id) ON DELETE CASCADE,
	question_id INTEGER NOT NULL,
	answer_text TEXT NOT NULL,
	correct BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS learning_stats (
	user_id INTEGER NOT NULL,
	day TEXT NOT NULL,
	quizzes_taken INTEGER NOT NULL DEFAULT 0,
	words_reviewed INTEGER NOT NULL DEFAULT 0,
	total_questions INTEGER NOT NULL DEFAULT 0,
	correct_answers INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (user_id, day)
);

CREATE INDEX IF NOT EXISTS idx_word_list_id ON word (list_id);
CREATE INDEX IF NOT EXISTS idx_word_progress_user_id ON word_progress (user_id);
CREATE INDEX IF NOT EXISTS idx_quiz_attempt_user_id ON quiz_attempt (user_id);
`

// Migrate applies the latest schema.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, latestSchema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
