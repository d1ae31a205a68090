package quiz

import (
	"context"
	"log/slog"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/generation"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

// VocabularyListRequest are the inputs for vocabulary-list generation.
type VocabularyListRequest struct {
	Topic          string
	Count          int
	TargetLanguage string
	NativeLanguage string
}

// GeneratedVocabularyList is the result of a vocabulary generation call.
type GeneratedVocabularyList struct {
	List  *store.VocabularyList
	Words []*store.Word
}

// GenerateVocabularyList generates vocabulary entries for a topic and
// persists them as a new list. When generation degrades to its empty-list
// fallback, an empty list is still created; the caller is never failed.
func (s *Service) GenerateVocabularyList(ctx context.Context, req VocabularyListRequest, userID int32) (*GeneratedVocabularyList, error) {
	entries := s.generator.GenerateVocabulary(ctx, req.Topic, req.Count, req.TargetLanguage, req.NativeLanguage)

	list, err := s.store.CreateVocabularyList(ctx, &store.VocabularyList{
		CreatorID:      userID,
		Name:           req.Topic,
		TargetLanguage: req.TargetLanguage,
		NativeLanguage: req.NativeLanguage,
	})
	if err != nil {
		return nil, err
	}

	words := make([]*store.Word, 0, len(entries))
	for _, entry := range entries {
		word, err := s.store.CreateWord(ctx, &store.Word{
			ListID:       list.ID,
			CreatorID:    userID,
			Text:         entry.Word,
			Translation:  entry.Translation,
			PartOfSpeech: entry.PartOfSpeech,
			Difficulty:   entry.Difficulty,
		})
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	if len(words) == 0 {
		s.logger.Warn("vocabulary generation produced no entries",
			slog.String("topic", req.Topic), slog.Int64("user_id", int64(userID)))
	}

	return &GeneratedVocabularyList{List: list, Words: words}, nil
}

// GenerateSentences generates three example sentences per requested word.
// Word ids that are malformed or not owned by the user are rejected with
// NOT_FOUND before any backend call.
func (s *Service) GenerateSentences(ctx context.Context, wordIDs []string, userID int32) ([]generation.WordSentences, error) {
	valid := make([]string, 0, len(wordIDs))
	for _, id := range wordIDs {
		if store.IsValidWordID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, errs.NotFound("no valid word ids supplied")
	}

	words, err := s.store.ListWords(ctx, &store.FindWord{IDs: valid, CreatorID: &userID})
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errs.NotFound("words not found")
	}

	targetLanguage := ""
	if list, err := s.store.GetVocabularyList(ctx, &store.FindVocabularyList{ID: &words[0].ListID}); err == nil && list != nil {
		targetLanguage = list.TargetLanguage
	}

	return s.generator.GenerateSentences(ctx, words, targetLanguage)
}

// AnalyzeComplexity scores arbitrary text for the learner; it degrades to a
// fixed medium fallback on generation failure.
func (s *Service) AnalyzeComplexity(ctx context.Context, text string) *generation.ComplexityReport {
	return s.generator.AnalyzeComplexity(ctx, text)
}

// HealthCheck probes the generation backend.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.generator.Healthy(ctx)
}
