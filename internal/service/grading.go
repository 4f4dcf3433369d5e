package service

import (
	"strings"

	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/model"
)

// GradedResponse is one matched, graded answer. Responses that reference
// a question outside the quiz never make it into the result.
type GradedResponse struct {
	QuestionID     uint
	SelectedAnswer any
	IsCorrect      bool
	QuestionType   string
	CorrectAnswer  string
}

// GradedResult is a pure function of the quiz snapshot and the submitted
// responses; replaying the same inputs always yields the same result.
type GradedResult struct {
	Score          int
	TotalQuestions int
	TotalMarks     int
	Percentage     int
	Responses      []GradedResponse
}

// Grade scores a submission against a fully loaded quiz. It never fails:
// malformed individual responses are absorbed by the tolerance policy.
//
//   - responses whose questionId is not in the quiz are dropped silently
//   - a non-numeric answer to a multiple-choice question is incorrect
//   - a missing or non-text answer to a fill-blank question is incorrect
//   - an unrecognized question type grades as incorrect
//
// TotalMarks is the sum over ALL quiz questions, answered or not.
func Grade(quiz *model.Quiz, responses []dto.AnswerSubmission) GradedResult {
	result := GradedResult{
		TotalQuestions: quiz.QuestionCount(),
		TotalMarks:     quiz.TotalMarks(),
	}

	for _, submitted := range responses {
		question, ok := quiz.QuestionByID(submitted.QuestionID)
		if !ok {
			continue
		}

		correct := gradeOne(question, submitted.SelectedAnswer)
		if correct {
			result.Score += question.Marks
		}
		result.Responses = append(result.Responses, GradedResponse{
			QuestionID:     question.ID,
			SelectedAnswer: submitted.SelectedAnswer,
			IsCorrect:      correct,
			QuestionType:   question.Type,
			CorrectAnswer:  question.CorrectAnswer,
		})
	}

	result.Percentage = model.PercentageOf(result.Score, result.TotalMarks)
	return result
}

func gradeOne(question *model.Question, selected any) bool {
	switch question.Type {
	case model.QuestionTypeMultipleChoice:
		correctIdx, ok := question.CorrectIndex()
		if !ok {
			return false
		}
		selectedIdx, ok := model.AnswerAsIndex(selected)
		return ok && selectedIdx == correctIdx
	case model.QuestionTypeFillBlank:
		text, ok := model.AnswerAsText(selected)
		if !ok {
			return false
		}
		return normalizeAnswerText(text) == normalizeAnswerText(question.CorrectAnswer)
	default:
		// A question with an unknown type must not fail the whole
		// submission; it simply grades as incorrect.
		return false
	}
}

func normalizeAnswerText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
