package repository

import (
	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithQuiz(id uint) (*model.Attempt, error)
	FindAllByUser(userID string) ([]model.Attempt, error)
	// UpdateDerivedFields corrects only the reconciled cache columns,
	// never the immutable responses.
	UpdateDerivedFields(id uint, totalMarks, percentage int) error
	DeleteByQuiz(quizID uint) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	// Single atomic create; GORM inserts the response rows alongside.
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.Preload("Responses").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithQuiz(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_quiz ASC")
		}).
		Preload("Responses").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByUser(userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("completed_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) UpdateDerivedFields(id uint, totalMarks, percentage int) error {
	return r.db.Model(&model.Attempt{}).Where("id = ?", id).Updates(map[string]any{
		"total_marks": totalMarks,
		"percentage":  percentage,
	}).Error
}

func (r *attemptRepository) DeleteByQuiz(quizID uint) error {
	return r.db.Where("quiz_id = ?", quizID).Delete(&model.Attempt{}).Error
}
