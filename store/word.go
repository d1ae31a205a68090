package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// wordIDPattern matches the opaque word id format: exactly 24 lowercase hex characters.
var wordIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// IsValidWordID reports whether id is a well-formed opaque word id.
func IsValidWordID(id string) bool {
	return wordIDPattern.MatchString(id)
}

// NewWordID generates a new opaque 24-hex-character word id.
func NewWordID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Word is the object representing a vocabulary word.
type Word struct {
	ID           string
	ListID       string
	CreatorID    int32
	CreatedTs    int64
	UpdatedTs    int64
	Text         string
	Translation  string
	PartOfSpeech string
	Difficulty   string
}

// FindWord is the find condition for word.
type FindWord struct {
	ID        *string
	IDs       []string
	ListID    *string
	CreatorID *int32

	Limit  *int
	Offset *int
}

// UpdateWord is the update request for word.
type UpdateWord struct {
	ID           string
	Text         *string
	Translation  *string
	PartOfSpeech *string
	Difficulty   *string
}

// DeleteWord is the delete request for word.
// Deleting a word cascades to its progress records and question links.
type DeleteWord struct {
	ID string
}

// CreateWord creates a new word.
func (s *Store) CreateWord(ctx context.Context, create *Word) (*Word, error) {
	if create.ID == "" {
		create.ID = NewWordID()
	}
	return s.driver.CreateWord(ctx, create)
}

// ListWords lists words with filter.
func (s *Store) ListWords(ctx context.Context, find *FindWord) ([]*Word, error) {
	return s.driver.ListWords(ctx, find)
}

// GetWord gets a word by find condition.
func (s *Store) GetWord(ctx context.Context, find *FindWord) (*Word, error) {
	list, err := s.driver.ListWords(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateWord updates a word.
func (s *Store) UpdateWord(ctx context.Context, update *UpdateWord) error {
	return s.driver.UpdateWord(ctx, update)
}

// DeleteWord deletes a word.
func (s *Store) DeleteWord(ctx context.Context, delete *DeleteWord) error {
	return s.driver.DeleteWord(ctx, delete)
}
