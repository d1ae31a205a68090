package store

import (
	"context"
)

// VocabularyList is the object representing a vocabulary list.
type VocabularyList struct {
	ID             string
	CreatorID      int32
	CreatedTs      int64
	UpdatedTs      int64
	Name           string
	Description    string
	TargetLanguage string
	NativeLanguage string
}

// FindVocabularyList is the find condition for vocabulary list.
type FindVocabularyList struct {
	ID        *string
	CreatorID *int32

	Limit  *int
	Offset *int
}

// DeleteVocabularyList is the delete request for vocabulary list.
// Deleting a list cascades to its words, quizzes and progress records.
type DeleteVocabularyList struct {
	ID string
}

// CreateVocabularyList creates a new vocabulary list.
func (s *Store) CreateVocabularyList(ctx context.Context, create *VocabularyList) (*VocabularyList, error) {
	if create.ID == "" {
		create.ID = NewWordID()
	}
	return s.driver.CreateVocabularyList(ctx, create)
}

// ListVocabularyLists lists vocabulary lists with filter.
func (s *Store) ListVocabularyLists(ctx context.Context, find *FindVocabularyList) ([]*VocabularyList, error) {
	return s.driver.ListVocabularyLists(ctx, find)
}

// GetVocabularyList gets a vocabulary list by find condition.
func (s *Store) GetVocabularyList(ctx context.Context, find *FindVocabularyList) (*VocabularyList, error) {
	list, err := s.driver.ListVocabularyLists(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteVocabularyList deletes a vocabulary list.
func (s *Store) DeleteVocabularyList(ctx context.Context, delete *DeleteVocabularyList) error {
	return s.driver.DeleteVocabularyList(ctx, delete)
}
