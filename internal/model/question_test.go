package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsa-memon/quiz-app-backend/internal/apperrors"
	"github.com/unsa-memon/quiz-app-backend/internal/model"
)

func TestNormalizeMultipleChoice(t *testing.T) {
	q, err := model.NormalizeQuestion(model.QuestionDraft{
		Type:          "multiple_choice",
		Text:          "Pick C",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: 2,
		Marks:         1,
	})
	require.NoError(t, err)
	assert.Equal(t, model.QuestionTypeMultipleChoice, q.Type)
	assert.Equal(t, "2", q.CorrectAnswer)

	idx, ok := q.CorrectIndex()
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestNormalizeAcceptsStringIndex(t *testing.T) {
	q, err := model.NormalizeQuestion(model.QuestionDraft{
		Type:          "multiple_choice",
		Text:          "Pick B",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", q.CorrectAnswer)
	assert.Equal(t, 1, q.Marks) // default
}

func TestNormalizeRepairsOptionLength(t *testing.T) {
	cases := []struct {
		name    string
		options []string
		want    []string
	}{
		{"missing", nil, []string{"", "", "", ""}},
		{"short", []string{"A", "B"}, []string{"A", "B", "", ""}},
		{"exact", []string{"A", "B", "C", "D"}, []string{"A", "B", "C", "D"}},
		{"long", []string{"A", "B", "C", "D", "E"}, []string{"A", "B", "C", "D"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := model.NormalizeQuestion(model.QuestionDraft{
				Type:          "multiple_choice",
				Text:          "q",
				Options:       tc.options,
				CorrectAnswer: 0,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, q.Options)
		})
	}
}

func TestNormalizeLegacyTrueFalse(t *testing.T) {
	cases := []struct {
		name   string
		typ    string
		answer any
		want   string
	}{
		{"bool true", "true_false", true, "0"},
		{"bool false", "true_false", false, "1"},
		{"string true", "truefalse", "TRUE", "0"},
		{"string false", "True/False", " false ", "1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := model.NormalizeQuestion(model.QuestionDraft{
				Type:          tc.typ,
				Text:          "statement",
				CorrectAnswer: tc.answer,
			})
			require.NoError(t, err)
			assert.Equal(t, model.QuestionTypeMultipleChoice, q.Type)
			assert.Equal(t, []string{"True", "False", "", ""}, q.Options)
			assert.Equal(t, tc.want, q.CorrectAnswer)
		})
	}
}

func TestNormalizeFillBlankTrimsAnswer(t *testing.T) {
	q, err := model.NormalizeQuestion(model.QuestionDraft{
		Type:          "fill_blank",
		Text:          "Capital of France?",
		Options:       []string{"should", "be", "dropped"},
		CorrectAnswer: "  Paris  ",
		Marks:         2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris", q.CorrectAnswer)
	assert.Empty(t, q.Options)
	assert.Equal(t, 2, q.Marks)
}

func TestNormalizeCollectsAllViolations(t *testing.T) {
	_, err := model.NormalizeQuestion(model.QuestionDraft{
		Type:          "multiple_choice",
		Text:          "",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: 7,
		Marks:         -3,
	})
	require.Error(t, err)

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Violations, 3)
}

func TestNormalizeRejectsUnknownType(t *testing.T) {
	_, err := model.NormalizeQuestion(model.QuestionDraft{
		Type:          "essay",
		Text:          "Discuss.",
		CorrectAnswer: "n/a",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPercentageOf(t *testing.T) {
	assert.Equal(t, 0, model.PercentageOf(0, 0))
	assert.Equal(t, 0, model.PercentageOf(5, 0))
	assert.Equal(t, 100, model.PercentageOf(3, 3))
	assert.Equal(t, 38, model.PercentageOf(3, 8))
	assert.Equal(t, 67, model.PercentageOf(2, 3))
}
