// Package test provides a store backed by a throwaway SQLite database for
// use in tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cindyylim/LanguageLearningApp-sub000/internal/profile"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
	"github.com/cindyylim/LanguageLearningApp-sub000/store/db"
)

// NewTestingStore creates a fully migrated store on a fresh SQLite database
// under t.TempDir. The database is removed with the temp dir when the test
// finishes.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	profile := getTestingProfile(t)
	dbDriver, err := db.NewDBDriver(profile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}
	if err := dbDriver.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return store.New(dbDriver, profile)
}

func getTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	return &profile.Profile{
		Mode:    "dev",
		Driver:  "sqlite",
		Data:    dir,
		DSN:     filepath.Join(dir, "lingua_test.db"),
		Version: "test",
	}
}
