package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/repository"
)

const recentAttemptsDigestSize = 5

// AnalyticsService folds a user's attempts into summary statistics.
type AnalyticsService interface {
	Aggregate(userID string) (*dto.AnalyticsSummaryDTO, error)
}

type analyticsService struct {
	attemptRepo repository.AttemptRepository
}

func NewAnalyticsService(attemptRepo repository.AttemptRepository) AnalyticsService {
	return &analyticsService{attemptRepo: attemptRepo}
}

// Aggregate computes totals, the per-subject breakdown and a recent
// digest. Attempts whose quiz no longer resolves stay in the totals but
// are excluded from subject grouping instead of failing the whole
// aggregation.
func (s *analyticsService) Aggregate(userID string) (*dto.AnalyticsSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching attempts for user %s: %w", userID, err)
	}

	summary := &dto.AnalyticsSummaryDTO{
		TotalAttempts:  len(attempts),
		HasAttempts:    len(attempts) > 0,
		Subjects:       []dto.SubjectStatsDTO{},
		RecentAttempts: []dto.AttemptSummaryDTO{},
	}
	if len(attempts) == 0 {
		return summary, nil
	}

	percentageSum := 0
	type bucket struct {
		count int
		sum   int
	}
	subjects := make(map[string]*bucket)

	for _, a := range attempts {
		percentageSum += a.Percentage

		if a.Quiz.ID == 0 {
			// Quiz deleted since the attempt; keep it in totals only.
			log.Debug().Uint("attemptID", a.ID).Uint("quizID", a.QuizID).Msg("Aggregate: attempt references a missing quiz, skipping subject bucket")
			continue
		}
		b, ok := subjects[a.Quiz.Subject]
		if !ok {
			b = &bucket{}
			subjects[a.Quiz.Subject] = b
		}
		b.count++
		b.sum += a.Percentage
	}

	summary.AveragePercentage = roundTwoPlaces(float64(percentageSum) / float64(len(attempts)))

	for subject, b := range subjects {
		summary.Subjects = append(summary.Subjects, dto.SubjectStatsDTO{
			Subject:           subject,
			Attempts:          b.count,
			AveragePercentage: roundTwoPlaces(float64(b.sum) / float64(b.count)),
		})
	}
	sort.Slice(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].Subject < summary.Subjects[j].Subject
	})

	// attempts arrive ordered by completed_at desc from the repository.
	for i, a := range attempts {
		if i == recentAttemptsDigestSize {
			break
		}
		summary.RecentAttempts = append(summary.RecentAttempts, dto.AttemptSummaryDTO{
			ID:          a.ID,
			QuizID:      a.QuizID,
			QuizTitle:   a.Quiz.Title,
			Subject:     a.Quiz.Subject,
			Score:       a.Score,
			TotalMarks:  a.TotalMarks,
			Percentage:  a.Percentage,
			CompletedAt: a.CompletedAt,
		})
	}

	return summary, nil
}

func roundTwoPlaces(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
