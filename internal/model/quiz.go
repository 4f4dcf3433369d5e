package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Title   string `json:"title" gorm:"not null"`
	Subject string `json:"subject" gorm:"not null;index"`
	// Duration is the time limit in minutes.
	Duration  int            `json:"duration" gorm:"not null"`
	CreatedBy string         `json:"created_by" gorm:"not null;index"`
	IsPublic  bool           `json:"is_public" gorm:"not null;default:false"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TotalMarks is derived from the questions, never stored. The attempt
// keeps a snapshot of it at submission time; reconciliation repairs that
// snapshot when the quiz changes afterwards.
func (q *Quiz) TotalMarks() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Marks
	}
	return total
}

func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// QuestionByID looks a question up within the quiz. Used by grading to
// match submitted responses against the quiz definition.
func (q *Quiz) QuestionByID(id uint) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}
