package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/unsa-memon/quiz-app-backend/internal/apperrors"
	"gorm.io/gorm"
)

// Question types form a closed set. Grading switches over these
// exhaustively; adding a type means touching the grading engine too.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFillBlank      = "fill_blank"
)

// MultipleChoiceOptionCount is fixed: every multiple-choice question carries
// exactly four options, padded or truncated on intake.
const MultipleChoiceOptionCount = 4

type Question struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	QuizID uint   `json:"quiz_id" gorm:"not null;index"`
	Type   string `json:"type" gorm:"not null"`
	Text   string `json:"text" gorm:"type:text;not null"`
	// Options is empty for fill-blank questions.
	Options []string `json:"options,omitempty" gorm:"type:jsonb;serializer:json"`
	// CorrectAnswer stores the 0-based option index for multiple choice
	// and the expected text for fill-blank.
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	Marks         int            `json:"marks" gorm:"not null;default:1"`
	OrderInQuiz   int            `json:"order_in_quiz" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// CorrectIndex returns the stored answer as an option index. The second
// return is false for fill-blank questions or a corrupted column.
func (q *Question) CorrectIndex() (int, bool) {
	if q.Type != QuestionTypeMultipleChoice {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(q.CorrectAnswer))
	if err != nil {
		return 0, false
	}
	return idx, true
}

// QuestionDraft is a question as authored, before normalization. The
// CorrectAnswer is untyped because clients legitimately send an option
// index, an answer string, or a boolean for the legacy true/false form.
type QuestionDraft struct {
	Type          string
	Text          string
	Options       []string
	CorrectAnswer any
	Marks         int
}

// NormalizeQuestion turns a draft into a valid Question or reports every
// violation at once.
//
// Intake is deliberately lenient where it can repair instead of reject:
// the legacy true/false shorthand is rewritten to a two-option multiple
// choice, and a multiple-choice option list of the wrong length is padded
// with empty strings or truncated to exactly four entries.
func NormalizeQuestion(d QuestionDraft) (Question, error) {
	var violations []string

	q := Question{
		Type:    strings.ToLower(strings.TrimSpace(d.Type)),
		Text:    strings.TrimSpace(d.Text),
		Options: d.Options,
		Marks:   d.Marks,
	}
	if q.Text == "" {
		violations = append(violations, "text: must not be empty")
	}
	if q.Marks == 0 {
		q.Marks = 1
	} else if q.Marks < 0 {
		violations = append(violations, "marks: must be a positive integer")
	}

	switch q.Type {
	case "true_false", "truefalse", "true/false":
		q.Type = QuestionTypeMultipleChoice
		q.Options = []string{"True", "False"}
		if idx, ok := trueFalseIndex(d.CorrectAnswer); ok {
			q.CorrectAnswer = strconv.Itoa(idx)
		} else {
			violations = append(violations, "correctAnswer: true/false answer must be a boolean or a true/false string")
		}
		padOptions(&q)
	case QuestionTypeMultipleChoice:
		padOptions(&q)
		if idx, ok := AnswerAsIndex(d.CorrectAnswer); ok && idx >= 0 && idx < len(q.Options) {
			q.CorrectAnswer = strconv.Itoa(idx)
		} else {
			violations = append(violations, fmt.Sprintf("correctAnswer: must be an option index between 0 and %d", len(q.Options)-1))
		}
	case QuestionTypeFillBlank:
		q.Options = nil
		if s, ok := AnswerAsText(d.CorrectAnswer); ok && strings.TrimSpace(s) != "" {
			q.CorrectAnswer = strings.TrimSpace(s)
		} else {
			violations = append(violations, "correctAnswer: must be a non-empty string")
		}
	default:
		violations = append(violations, fmt.Sprintf("type: unsupported question type %q", d.Type))
	}

	if len(violations) > 0 {
		return Question{}, apperrors.NewValidationError(violations...)
	}
	return q, nil
}

func padOptions(q *Question) {
	if len(q.Options) > MultipleChoiceOptionCount {
		q.Options = q.Options[:MultipleChoiceOptionCount]
		return
	}
	for len(q.Options) < MultipleChoiceOptionCount {
		q.Options = append(q.Options, "")
	}
}

func trueFalseIndex(v any) (int, bool) {
	switch a := v.(type) {
	case bool:
		if a {
			return 0, true
		}
		return 1, true
	case string:
		switch strings.ToLower(strings.TrimSpace(a)) {
		case "true":
			return 0, true
		case "false":
			return 1, true
		}
	}
	return 0, false
}

// AnswerAsIndex interprets a submitted or authored answer as an integer
// option index. JSON numbers arrive as float64, form values as strings.
func AnswerAsIndex(v any) (int, bool) {
	switch a := v.(type) {
	case int:
		return a, true
	case int64:
		return int(a), true
	case float64:
		if a == float64(int(a)) {
			return int(a), true
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// AnswerAsText interprets a submitted or authored answer as free text.
func AnswerAsText(v any) (string, bool) {
	switch a := v.(type) {
	case string:
		return a, true
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64), true
	case int:
		return strconv.Itoa(a), true
	}
	return "", false
}
