package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"github.com/unsa-memon/quiz-app-backend/internal/service"
)

func seedQuiz(t *testing.T, quizRepo *fakeQuizRepo, subject string) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		Title:   subject + " quiz",
		Subject: subject,
		Questions: []model.Question{
			{Type: model.QuestionTypeFillBlank, Text: "q", CorrectAnswer: "a", Marks: 10},
		},
	}
	require.NoError(t, quizRepo.Create(quiz))
	return quiz
}

func seedAttempt(t *testing.T, attemptRepo *fakeAttemptRepo, quizID uint, userID string, percentage int, completedAt time.Time) {
	t.Helper()
	require.NoError(t, attemptRepo.Create(&model.Attempt{
		QuizID:      quizID,
		UserID:      userID,
		Score:       percentage / 10,
		TotalMarks:  10,
		Percentage:  percentage,
		CompletedAt: completedAt,
	}))
}

func TestAggregateEmptyStateIsExplicit(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	svc := service.NewAnalyticsService(newFakeAttemptRepo(quizRepo))

	summary, err := svc.Aggregate("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalAttempts)
	assert.False(t, summary.HasAttempts)
	assert.Equal(t, 0.0, summary.AveragePercentage)
	assert.Empty(t, summary.Subjects)
	assert.Empty(t, summary.RecentAttempts)
}

func TestAggregateAveragesAndSubjectBuckets(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	attemptRepo := newFakeAttemptRepo(quizRepo)
	svc := service.NewAnalyticsService(attemptRepo)

	geo := seedQuiz(t, quizRepo, "Geography")
	math := seedQuiz(t, quizRepo, "Math")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedAttempt(t, attemptRepo, geo.ID, "u1", 80, base)
	seedAttempt(t, attemptRepo, geo.ID, "u1", 60, base.Add(time.Hour))
	seedAttempt(t, attemptRepo, math.ID, "u1", 100, base.Add(2*time.Hour))
	seedAttempt(t, attemptRepo, math.ID, "someone-else", 10, base)

	summary, err := svc.Aggregate("u1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalAttempts)
	assert.True(t, summary.HasAttempts)
	assert.Equal(t, 80.0, summary.AveragePercentage)

	require.Len(t, summary.Subjects, 2)
	assert.Equal(t, "Geography", summary.Subjects[0].Subject)
	assert.Equal(t, 2, summary.Subjects[0].Attempts)
	assert.Equal(t, 70.0, summary.Subjects[0].AveragePercentage)
	assert.Equal(t, "Math", summary.Subjects[1].Subject)
	assert.Equal(t, 1, summary.Subjects[1].Attempts)
	assert.Equal(t, 100.0, summary.Subjects[1].AveragePercentage)
}

func TestAggregateToleratesDeletedQuiz(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	attemptRepo := newFakeAttemptRepo(quizRepo)
	svc := service.NewAnalyticsService(attemptRepo)

	geo := seedQuiz(t, quizRepo, "Geography")
	doomed := seedQuiz(t, quizRepo, "History")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedAttempt(t, attemptRepo, geo.ID, "u1", 50, base)
	seedAttempt(t, attemptRepo, doomed.ID, "u1", 90, base.Add(time.Hour))

	require.NoError(t, quizRepo.Delete(doomed.ID))

	summary, err := svc.Aggregate("u1")
	require.NoError(t, err)
	// The orphaned attempt still counts toward totals and the average.
	assert.Equal(t, 2, summary.TotalAttempts)
	assert.Equal(t, 70.0, summary.AveragePercentage)
	// But it is excluded from the subject grouping.
	require.Len(t, summary.Subjects, 1)
	assert.Equal(t, "Geography", summary.Subjects[0].Subject)
}

func TestAggregateRecentDigestKeepsFive(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	attemptRepo := newFakeAttemptRepo(quizRepo)
	svc := service.NewAnalyticsService(attemptRepo)

	quiz := seedQuiz(t, quizRepo, "Geography")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedAttempt(t, attemptRepo, quiz.ID, "u1", 10*i, base.Add(time.Duration(i)*time.Hour))
	}

	summary, err := svc.Aggregate("u1")
	require.NoError(t, err)
	assert.Equal(t, 7, summary.TotalAttempts)
	require.Len(t, summary.RecentAttempts, 5)
	// Newest first.
	assert.Equal(t, 60, summary.RecentAttempts[0].Percentage)
	assert.Equal(t, 20, summary.RecentAttempts[4].Percentage)
}
