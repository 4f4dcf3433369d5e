package dto

// QuestionCreateDTO is one authored question inside a quiz create/update
// request. CorrectAnswer is untyped on purpose: clients send an option
// index for multiple choice, text for fill-blank, or a boolean for the
// legacy true/false shorthand.
type QuestionCreateDTO struct {
	Type          string   `json:"type" binding:"required"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer any      `json:"correctAnswer"`
	Marks         int      `json:"marks"`
}

// QuizCreateDTO is the admin/author request to create a quiz with its
// full question list.
type QuizCreateDTO struct {
	Title     string              `json:"title" binding:"required"`
	Subject   string              `json:"subject" binding:"required"`
	Duration  int                 `json:"duration" binding:"required,min=1"`
	IsPublic  bool                `json:"isPublic"`
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// QuizUpdateDTO carries partial metadata updates. A nil field is left
// untouched; replacing questions goes through the same draft pipeline as
// creation.
type QuizUpdateDTO struct {
	Title     *string              `json:"title"`
	Subject   *string              `json:"subject"`
	Duration  *int                 `json:"duration" binding:"omitempty,min=1"`
	IsPublic  *bool                `json:"isPublic"`
	Questions *[]QuestionCreateDTO `json:"questions" binding:"omitempty,min=1,dive"`
}

// AnswerSubmission is a single {questionId, selectedAnswer} pair.
// SelectedAnswer stays untyped so "2" and 2 both grade the same.
type AnswerSubmission struct {
	QuestionID     uint `json:"questionId" binding:"required"`
	SelectedAnswer any  `json:"selectedAnswer"`
}

// AttemptSubmitDTO is the full submission for one quiz attempt. Responses
// may cover only a subset of the quiz questions.
type AttemptSubmitDTO struct {
	Responses []AnswerSubmission `json:"responses"`
	TimeTaken int                `json:"timeTaken"`
}
