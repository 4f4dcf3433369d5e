package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/unsa-memon/quiz-app-backend/internal/apperrors"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"github.com/unsa-memon/quiz-app-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptService grades submissions, persists the outcome and serves the
// reconciled result back for review pages.
type AttemptService interface {
	Submit(quizID uint, userID string, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error)
	GetResult(attemptID uint) (*dto.AttemptResultDTO, error)
	GetUserAttempts(userID string) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

func NewAttemptService(quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) AttemptService {
	return &attemptService{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

// Submit grades the responses against the quiz and stores the attempt as
// one atomic create. Anonymous callers get a synthesized identity so the
// attempt is still retrievable afterwards.
func (s *attemptService) Submit(quizID uint, userID string, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error) {
	if req.Responses == nil {
		return nil, apperrors.NewMalformedInputError("responses must be a sequence of {questionId, selectedAnswer}")
	}

	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("quiz", quizID)
		}
		return nil, fmt.Errorf("loading quiz %d: %w", quizID, err)
	}

	if userID == "" {
		userID = model.AnonymousUserPrefix + uuid.NewString()
		log.Info().Str("userID", userID).Uint("quizID", quizID).Msg("Synthesized identity for anonymous attempt")
	}

	graded := Grade(quiz, req.Responses)

	timeTaken := req.TimeTaken
	if timeTaken < 0 {
		timeTaken = 0
	}

	attempt := model.Attempt{
		QuizID:         quiz.ID,
		UserID:         userID,
		Score:          graded.Score,
		TotalQuestions: graded.TotalQuestions,
		TotalMarks:     graded.TotalMarks,
		Percentage:     graded.Percentage,
		TimeTaken:      timeTaken,
		CompletedAt:    time.Now(),
	}
	for _, r := range graded.Responses {
		raw, mErr := json.Marshal(r.SelectedAnswer)
		if mErr != nil {
			raw = []byte("null")
		}
		attempt.Responses = append(attempt.Responses, model.Response{
			QuestionID:     r.QuestionID,
			SelectedAnswer: datatypes.JSON(raw),
			IsCorrect:      r.IsCorrect,
			QuestionType:   r.QuestionType,
			CorrectAnswer:  r.CorrectAnswer,
		})
	}

	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Submit: failed to persist attempt")
		return nil, fmt.Errorf("persisting attempt: %w", err)
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("quizID", quiz.ID).
		Str("userID", userID).
		Int("score", graded.Score).
		Int("percentage", graded.Percentage).
		Msg("Attempt graded and stored")

	attempt.Quiz = *quiz
	return s.buildResultDTO(&attempt, quiz), nil
}

// GetResult returns the attempt with its derived fields reconciled
// against the CURRENT quiz definition. The quiz may have been edited
// since the attempt, so totalMarks and percentage are recomputed here
// rather than trusted from the stored snapshot. A failure to persist the
// correction degrades to returning the freshly computed values.
func (s *attemptService) GetResult(attemptID uint) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithQuiz(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("attempt", attemptID)
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}

	quiz := &attempt.Quiz
	if quiz.ID != 0 {
		totalPossible := quiz.TotalMarks()
		percentage := model.PercentageOf(attempt.Score, totalPossible)
		if totalPossible != attempt.TotalMarks || percentage != attempt.Percentage {
			if updErr := s.attemptRepo.UpdateDerivedFields(attempt.ID, totalPossible, percentage); updErr != nil {
				// Reconciliation must never block the read path.
				log.Warn().Err(updErr).Uint("attemptID", attempt.ID).Msg("GetResult: failed to persist reconciled fields, returning recomputed values")
			} else {
				log.Info().
					Uint("attemptID", attempt.ID).
					Int("totalMarks", totalPossible).
					Int("percentage", percentage).
					Msg("Reconciled stale attempt fields")
			}
		}
		attempt.TotalMarks = totalPossible
		attempt.Percentage = percentage
	}

	return s.buildResultDTO(attempt, quiz), nil
}

func (s *attemptService) GetUserAttempts(userID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching attempts for user %s: %w", userID, err)
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, a := range attempts {
		summaries = append(summaries, dto.AttemptSummaryDTO{
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
	return summaries, nil
}

// buildResultDTO enriches each stored response with the current question
// definition for display. The stored correctness flags and answer
// snapshots are copied as-is; they are immutable.
func (s *attemptService) buildResultDTO(attempt *model.Attempt, quiz *model.Quiz) *dto.AttemptResultDTO {
	result := &dto.AttemptResultDTO{
		ID:             attempt.ID,
		QuizID:         attempt.QuizID,
		UserID:         attempt.UserID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		TotalMarks:     attempt.TotalMarks,
		Percentage:     attempt.Percentage,
		TimeTaken:      attempt.TimeTaken,
		CompletedAt:    attempt.CompletedAt,
		Responses:      make([]dto.ResponseResultDTO, 0, len(attempt.Responses)),
	}
	if quiz != nil && quiz.ID != 0 {
		result.QuizTitle = quiz.Title
		result.Subject = quiz.Subject
	}

	for _, r := range attempt.Responses {
		item := dto.ResponseResultDTO{
			QuestionID:     r.QuestionID,
			SelectedAnswer: json.RawMessage(r.SelectedAnswer),
			IsCorrect:      r.IsCorrect,
			QuestionType:   r.QuestionType,
			CorrectAnswer:  r.CorrectAnswer,
		}
		if quiz != nil {
			if question, ok := quiz.QuestionByID(r.QuestionID); ok {
				item.QuestionText = question.Text
				item.Options = question.Options
				item.QuestionType = question.Type
				item.CorrectAnswer = question.CorrectAnswer
			}
		}
		result.Responses = append(result.Responses, item)
	}
	return result
}
