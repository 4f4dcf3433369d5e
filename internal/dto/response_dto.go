package dto

import (
	"encoding/json"
	"time"
)

// QuestionResponseDTO is a question as shown to a quiz taker. The correct
// answer is deliberately absent.
type QuestionResponseDTO struct {
	ID      uint     `json:"id"`
	QuizID  uint     `json:"quiz_id"`
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
	Marks   int      `json:"marks"`
}

// QuizResponseDTO is the full quiz detail, including derived totals.
type QuizResponseDTO struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Subject       string                `json:"subject"`
	Duration      int                   `json:"duration"`
	CreatedBy     string                `json:"created_by"`
	IsPublic      bool                  `json:"is_public"`
	TotalMarks    int                   `json:"total_marks"`
	QuestionCount int                   `json:"question_count"`
	Questions     []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// QuizSummaryDTO is used for listing endpoints.
type QuizSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Duration      int       `json:"duration"`
	IsPublic      bool      `json:"is_public"`
	TotalMarks    int       `json:"total_marks"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResponseResultDTO is one graded response within an attempt result,
// enriched with the current question definition for review pages. The
// correctness flag and answer snapshot are the immutable graded values.
type ResponseResultDTO struct {
	QuestionID     uint            `json:"question_id"`
	SelectedAnswer json.RawMessage `json:"selected_answer"`
	IsCorrect      bool            `json:"is_correct"`
	QuestionType   string          `json:"question_type"`
	CorrectAnswer  string          `json:"correct_answer"`
	QuestionText   string          `json:"question_text,omitempty"`
	Options        []string        `json:"options,omitempty"`
}

// AttemptResultDTO is the reconciled attempt as returned by the submit
// and results endpoints.
type AttemptResultDTO struct {
	ID             uint                `json:"id"`
	QuizID         uint                `json:"quiz_id"`
	QuizTitle      string              `json:"quiz_title,omitempty"`
	Subject        string              `json:"subject,omitempty"`
	UserID         string              `json:"user_id"`
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	TotalMarks     int                 `json:"total_marks"`
	Percentage     int                 `json:"percentage"`
	TimeTaken      int                 `json:"time_taken"`
	CompletedAt    time.Time           `json:"completed_at"`
	Responses      []ResponseResultDTO `json:"responses"`
}

// AttemptSummaryDTO is used when listing a user's attempts.
type AttemptSummaryDTO struct {
	ID          uint      `json:"id"`
	QuizID      uint      `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Score       int       `json:"score"`
	TotalMarks  int       `json:"total_marks"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
