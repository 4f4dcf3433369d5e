package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/unsa-memon/quiz-app-backend/internal/apperrors"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"github.com/unsa-memon/quiz-app-backend/internal/repository"
	"gorm.io/gorm"
)

// QuizService owns quiz authoring and listing. Mutations require the
// caller to be the quiz owner or an admin; reads are open for public
// quizzes.
type QuizService interface {
	Create(ownerID string, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	GetByID(id uint, requesterID string, isAdmin bool) (*dto.QuizResponseDTO, error)
	ListPublic() ([]dto.QuizSummaryDTO, error)
	ListBySubject(subject string) ([]dto.QuizSummaryDTO, error)
	ListByOwner(ownerID string) ([]dto.QuizSummaryDTO, error)
	Update(id uint, requesterID string, isAdmin bool, req dto.QuizUpdateDTO) (*dto.QuizResponseDTO, error)
	Delete(id uint, requesterID string, isAdmin bool) error
}

type quizService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

func NewQuizService(quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) QuizService {
	return &quizService{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

func (s *quizService) Create(ownerID string, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	questions, err := normalizeDrafts(req.Questions)
	if err != nil {
		return nil, err
	}

	quiz := model.Quiz{
		Title:     req.Title,
		Subject:   req.Subject,
		Duration:  req.Duration,
		CreatedBy: ownerID,
		IsPublic:  req.IsPublic,
		Questions: questions,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("Create quiz: database error")
		return nil, fmt.Errorf("creating quiz: %w", err)
	}

	log.Info().Uint("quizID", quiz.ID).Str("owner", ownerID).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return quizToResponse(&quiz), nil
}

func (s *quizService) GetByID(id uint, requesterID string, isAdmin bool) (*dto.QuizResponseDTO, error) {
	quiz, err := s.findQuiz(id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublic && quiz.CreatedBy != requesterID && !isAdmin {
		return nil, apperrors.NewForbiddenError("quiz is private")
	}
	return quizToResponse(quiz), nil
}

func (s *quizService) ListPublic() ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAllPublic()
	if err != nil {
		return nil, fmt.Errorf("listing public quizzes: %w", err)
	}
	return quizzesToSummaries(quizzes), nil
}

func (s *quizService) ListBySubject(subject string) ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindBySubject(subject)
	if err != nil {
		return nil, fmt.Errorf("listing quizzes for subject %s: %w", subject, err)
	}
	return quizzesToSummaries(quizzes), nil
}

func (s *quizService) ListByOwner(ownerID string) ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing quizzes for owner %s: %w", ownerID, err)
	}
	return quizzesToSummaries(quizzes), nil
}

func (s *quizService) Update(id uint, requesterID string, isAdmin bool, req dto.QuizUpdateDTO) (*dto.QuizResponseDTO, error) {
	quiz, err := s.findQuiz(id)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedBy != requesterID && !isAdmin {
		return nil, apperrors.NewForbiddenError("only the quiz owner may edit it")
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Subject != nil {
		quiz.Subject = *req.Subject
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	}
	if req.IsPublic != nil {
		quiz.IsPublic = *req.IsPublic
	}

	var replacement []model.Question
	if req.Questions != nil {
		questions, nErr := normalizeDrafts(*req.Questions)
		if nErr != nil {
			return nil, nErr
		}
		if rErr := s.quizRepo.ReplaceQuestions(quiz.ID, questions); rErr != nil {
			log.Error().Err(rErr).Uint("quizID", quiz.ID).Msg("Update quiz: failed to replace questions")
			return nil, fmt.Errorf("replacing questions: %w", rErr)
		}
		replacement = questions
	}

	// Metadata save only; the question list was already replaced above.
	quiz.Questions = nil
	if err := s.quizRepo.Update(quiz); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Update quiz: database error")
		return nil, fmt.Errorf("updating quiz: %w", err)
	}

	if replacement != nil {
		quiz.Questions = replacement
	} else if reloaded, rErr := s.quizRepo.FindByIDWithQuestions(quiz.ID); rErr == nil {
		quiz.Questions = reloaded.Questions
	}
	return quizToResponse(quiz), nil
}

// Delete removes a quiz and every attempt referencing it. Dependents go
// first; if their cleanup fails the quiz stays and the error is
// reported.
func (s *quizService) Delete(id uint, requesterID string, isAdmin bool) error {
	quiz, err := s.findQuiz(id)
	if err != nil {
		return err
	}
	if quiz.CreatedBy != requesterID && !isAdmin {
		return apperrors.NewForbiddenError("only the quiz owner may delete it")
	}

	if err := s.attemptRepo.DeleteByQuiz(quiz.ID); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Delete quiz: dependent attempt cleanup failed, quiz kept")
		return fmt.Errorf("deleting attempts for quiz %d: %w", quiz.ID, err)
	}
	if err := s.quizRepo.Delete(quiz.ID); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Delete quiz: database error")
		return fmt.Errorf("deleting quiz %d: %w", quiz.ID, err)
	}
	log.Info().Uint("quizID", quiz.ID).Str("requester", requesterID).Msg("Quiz deleted with its attempts")
	return nil
}

func (s *quizService) findQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("quiz", id)
		}
		return nil, fmt.Errorf("loading quiz %d: %w", id, err)
	}
	return quiz, nil
}

// normalizeDrafts runs every authored question through the intake
// pipeline and reports the violations of ALL questions in one error.
func normalizeDrafts(drafts []dto.QuestionCreateDTO) ([]model.Question, error) {
	var questions []model.Question
	var violations []string
	for i, d := range drafts {
		q, err := model.NormalizeQuestion(model.QuestionDraft{
			Type:          d.Type,
			Text:          d.Text,
			Options:       d.Options,
			CorrectAnswer: d.CorrectAnswer,
			Marks:         d.Marks,
		})
		if err != nil {
			var ve *apperrors.ValidationError
			if errors.As(err, &ve) {
				for _, v := range ve.Violations {
					violations = append(violations, fmt.Sprintf("questions[%d].%s", i, v))
				}
				continue
			}
			return nil, err
		}
		q.OrderInQuiz = i + 1
		questions = append(questions, q)
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations...)
	}
	return questions, nil
}

func quizToResponse(quiz *model.Quiz) *dto.QuizResponseDTO {
	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to copy quiz model to DTO")
	}
	resp.TotalMarks = quiz.TotalMarks()
	resp.QuestionCount = quiz.QuestionCount()
	return &resp
}

func quizzesToSummaries(quizzes []model.Quiz) []dto.QuizSummaryDTO {
	summaries := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for i := range quizzes {
		q := &quizzes[i]
		summaries = append(summaries, dto.QuizSummaryDTO{
			ID:            q.ID,
			Title:         q.Title,
			Subject:       q.Subject,
			Duration:      q.Duration,
			IsPublic:      q.IsPublic,
			TotalMarks:    q.TotalMarks(),
			QuestionCount: q.QuestionCount(),
			CreatedAt:     q.CreatedAt,
		})
	}
	return summaries
}
