package model

import (
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnonymousUserPrefix marks identities synthesized for unauthenticated
// attempts.
const AnonymousUserPrefix = "anon-"

type Attempt struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	QuizID uint   `json:"quiz_id" gorm:"not null;index"`
	Quiz   Quiz   `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	UserID string `json:"user_id" gorm:"not null;index"`
	Score  int    `json:"score" gorm:"not null"`
	// TotalQuestions and TotalMarks are snapshots of the quiz at
	// submission time. Percentage is a cache over Score and TotalMarks;
	// reconciliation is the only place that repairs it.
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	TotalMarks     int            `json:"total_marks" gorm:"not null"`
	Percentage     int            `json:"percentage" gorm:"not null"`
	Responses      []Response     `json:"responses,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TimeTaken      int            `json:"time_taken" gorm:"not null"` // seconds
	CompletedAt    time.Time      `json:"completed_at" gorm:"autoCreateTime;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Response is one graded answer within an attempt. Rows are immutable
// once graded; reconciliation only enriches them for display.
type Response struct {
	ID        uint `gorm:"primarykey" json:"id"`
	AttemptID uint `json:"attempt_id" gorm:"not null;index"`
	// QuestionID references the quiz question this answered. It is kept
	// even if the question is later removed from the quiz.
	QuestionID uint `json:"question_id" gorm:"not null;index"`
	// SelectedAnswer keeps the raw submitted value (number or string).
	SelectedAnswer datatypes.JSON `json:"selected_answer" gorm:"type:jsonb"`
	IsCorrect      bool           `json:"is_correct" gorm:"not null"`
	QuestionType   string         `json:"question_type" gorm:"not null"`
	// CorrectAnswer is the answer snapshot taken at grading time.
	CorrectAnswer string    `json:"correct_answer" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PercentageOf derives the cached percentage from a score and total. It
// is 0 whenever totalMarks is 0 so an empty quiz never divides by zero.
func PercentageOf(score, totalMarks int) int {
	if totalMarks <= 0 {
		return 0
	}
	p := math.Round(float64(score) / float64(totalMarks) * 100)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return int(p)
}
