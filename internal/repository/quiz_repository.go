package repository

import (
	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindBySubject(subject string) ([]model.Quiz, error)
	FindByOwner(owner string) ([]model.Quiz, error)
	FindAllPublic() ([]model.Quiz, error)
	Update(quiz *model.Quiz) error
	ReplaceQuestions(quizID uint, questions []model.Question) error
	Delete(id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates the associated questions in the same insert.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_quiz ASC")
	}).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindBySubject(subject string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Preload("Questions").
		Where("subject = ? AND is_public = ?", subject, true).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindByOwner(owner string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Preload("Questions").
		Where("created_by = ?", owner).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindAllPublic() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Preload("Questions").
		Where("is_public = ?", true).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}

// ReplaceQuestions swaps the full question list of a quiz in one
// transaction so a half-applied edit never becomes visible.
func (r *quizRepository) ReplaceQuestions(quizID uint, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quizID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *quizRepository) Delete(id uint) error {
	return r.db.Delete(&model.Quiz{}, id).Error
}
