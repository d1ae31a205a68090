package generation

import (
	"fmt"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

// Complexity levels reported by the complexity analysis.
const (
	ComplexityEasy   = "easy"
	ComplexityMedium = "medium"
	ComplexityHard   = "hard"
)

// GeneratedQuestion is one quiz question returned by the backend.
type GeneratedQuestion struct {
	WordID        string   `json:"wordId"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Context       string   `json:"context,omitempty"`
	Difficulty    string   `json:"difficulty"`
}

// WordSentences is the set of example sentences generated for one word.
type WordSentences struct {
	WordID    string   `json:"wordId"`
	Word      string   `json:"word"`
	Sentences []string `json:"sentences"`
}

// VocabularyEntry is one generated vocabulary-list entry.
type VocabularyEntry struct {
	Word         string `json:"word"`
	Translation  string `json:"translation"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// ComplexityReport is the text-complexity analysis artifact.
type ComplexityReport struct {
	Complexity  string   `json:"complexity"`
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// FallbackComplexityReport is returned when complexity analysis exhausts its
// retries; the feature is advisory, so callers get a medium guess instead of
// an error.
func FallbackComplexityReport() *ComplexityReport {
	return &ComplexityReport{
		Complexity:  ComplexityMedium,
		Score:       0.5,
		Suggestions: []string{"Unable to analyze text complexity at this time."},
	}
}

func validateQuestion(q *GeneratedQuestion) error {
	if q.Question == "" {
		return fmt.Errorf("validation: question text is required")
	}
	if q.CorrectAnswer == "" {
		return fmt.Errorf("validation: correctAnswer is required")
	}
	if !store.IsValidQuestionType(q.Type) {
		return fmt.Errorf("validation: unknown question type %q", q.Type)
	}
	if q.Type == string(store.QuestionMultipleChoice) && len(q.Options) < 2 {
		return fmt.Errorf("validation: multiple_choice question needs at least 2 options")
	}
	return nil
}

func validateSentences(s *WordSentences) error {
	if s.Word == "" {
		return fmt.Errorf("validation: word is required")
	}
	if len(s.Sentences) == 0 {
		return fmt.Errorf("validation: sentences are required")
	}
	for _, sentence := range s.Sentences {
		if sentence == "" {
			return fmt.Errorf("validation: empty sentence for word %q", s.Word)
		}
	}
	return nil
}

func validateVocabularyEntry(e *VocabularyEntry) error {
	if e.Word == "" {
		return fmt.Errorf("validation: word is required")
	}
	if e.Translation == "" {
		return fmt.Errorf("validation: translation is required for %q", e.Word)
	}
	return nil
}

func validateComplexityReport(r *ComplexityReport) error {
	switch r.Complexity {
	case ComplexityEasy, ComplexityMedium, ComplexityHard:
	default:
		return fmt.Errorf("validation: unknown complexity %q", r.Complexity)
	}
	if r.Score < 0 || r.Score > 1 {
		return fmt.Errorf("validation: score %f out of range [0,1]", r.Score)
	}
	return nil
}
