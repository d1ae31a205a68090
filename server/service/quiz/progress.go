package quiz

import (
	"context"
	"fmt"

	"github.com/cindyylim/LanguageLearningApp-sub000/store"
)

// ProgressSummary is the progress dashboard payload.
type ProgressSummary struct {
	TotalWords     int
	MasteredWords  int
	LearningWords  int
	AverageMastery float64
	StreakDays     int
	RecentAttempts []*store.QuizAttempt
	WordProgress   []*store.WordProgress
	DailyStats     []*store.LearningStats
}

// GetProgressSummary aggregates a user's word progress, recent attempts,
// daily stats and current learning streak.
func (s *Service) GetProgressSummary(ctx context.Context, userID int32) (*ProgressSummary, error) {
	progress, err := s.store.ListWordProgress(ctx, &store.FindWordProgress{UserID: &userID})
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		TotalWords:   len(progress),
		WordProgress: progress,
	}
	masterySum := 0.0
	for _, record := range progress {
		masterySum += record.Mastery
		if record.Status == store.ProgressMastered {
			summary.MasteredWords++
		} else {
			summary.LearningWords++
		}
	}
	if len(progress) > 0 {
		summary.AverageMastery = masterySum / float64(len(progress))
	}

	streakDays, err := s.streaks.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.StreakDays = streakDays

	attemptLimit := 10
	attempts, err := s.store.ListQuizAttempts(ctx, &store.FindQuizAttempt{UserID: &userID, Limit: &attemptLimit})
	if err != nil {
		return nil, err
	}
	summary.RecentAttempts = attempts

	statsLimit := 30
	stats, err := s.store.ListLearningStats(ctx, &store.FindLearningStats{UserID: &userID, Limit: &statsLimit})
	if err != nil {
		return nil, err
	}
	summary.DailyStats = stats

	return summary, nil
}

const (
	weakMasteryThreshold = 0.5
	recommendationLimit  = 10
	// minutesPerWord is the rough study time estimate per recommended word.
	minutesPerWord = 2
)

// Recommendations is the study-recommendation payload.
type Recommendations struct {
	FocusAreas       []string
	RecommendedWords []*store.Word
	StudyPlan        []string
	EstimatedTime    int
}

// GetRecommendations derives focus areas and a study plan from weak and due
// words.
func (s *Service) GetRecommendations(ctx context.Context, userID int32) (*Recommendations, error) {
	limit := recommendationLimit
	weakThreshold := weakMasteryThreshold
	weak, err := s.store.ListWordProgress(ctx, &store.FindWordProgress{
		UserID:       &userID,
		MasteryBelow: &weakThreshold,
		Limit:        &limit,
	})
	if err != nil {
		return nil, err
	}

	nowTs := s.now().Unix()
	due, err := s.store.ListWordProgress(ctx, &store.FindWordProgress{
		UserID:           &userID,
		NextReviewBefore: &nowTs,
		Limit:            &limit,
	})
	if err != nil {
		return nil, err
	}

	wordIDs := make([]string, 0, len(weak)+len(due))
	seen := make(map[string]bool)
	for _, record := range append(append([]*store.WordProgress{}, weak...), due...) {
		if seen[record.WordID] {
			continue
		}
		seen[record.WordID] = true
		wordIDs = append(wordIDs, record.WordID)
		if len(wordIDs) >= recommendationLimit {
			break
		}
	}

	recommendations := &Recommendations{
		FocusAreas:       []string{},
		RecommendedWords: []*store.Word{},
		StudyPlan:        []string{},
	}

	if len(weak) > 0 {
		recommendations.FocusAreas = append(recommendations.FocusAreas,
			fmt.Sprintf("Strengthen %d words with low mastery", len(weak)))
	}
	if len(due) > 0 {
		recommendations.FocusAreas = append(recommendations.FocusAreas,
			fmt.Sprintf("Review %d words that are due", len(due)))
	}
	if len(weak) == 0 && len(due) == 0 {
		recommendations.FocusAreas = append(recommendations.FocusAreas,
			"Learn new words to keep your streak going")
	}

	if len(wordIDs) > 0 {
		words, err := s.store.ListWords(ctx, &store.FindWord{IDs: wordIDs})
		if err != nil {
			return nil, err
		}
		recommendations.RecommendedWords = words

		recommendations.StudyPlan = append(recommendations.StudyPlan,
			fmt.Sprintf("Review the %d recommended words", len(words)),
			"Take a quiz on your weakest list")
		recommendations.EstimatedTime = len(words)*minutesPerWord + 5
	} else {
		recommendations.StudyPlan = append(recommendations.StudyPlan,
			"Generate a new vocabulary list on a topic you enjoy")
		recommendations.EstimatedTime = 10
	}

	return recommendations, nil
}
