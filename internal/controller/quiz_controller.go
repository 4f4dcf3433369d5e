package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/middleware"
	"github.com/unsa-memon/quiz-app-backend/internal/service"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary Create a quiz with its questions
// @Description Authenticated authors create a quiz. Question definitions are normalized (legacy true/false folds into multiple choice, option lists are repaired to four entries) and every violation is reported at once.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateDTO true "Quiz definition"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.quizService.Create(middleware.UserID(ctx), req)
	if err != nil {
		respondError(ctx, err, "Failed to create quiz")
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Quiz is private"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetByID(quizID, middleware.UserID(ctx), middleware.IsAdmin(ctx))
	if err != nil {
		respondError(ctx, err, "Failed to retrieve quiz")
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Lists public quizzes. Filter with ?subject= or ?mine=true (own quizzes, requires auth).
// @Tags Quizzes
// @Produce json
// @Param subject query string false "Filter by subject"
// @Param mine query bool false "List the caller's own quizzes"
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	var (
		quizzes []dto.QuizSummaryDTO
		err     error
	)
	switch {
	case ctx.Query("mine") == "true":
		userID := middleware.UserID(ctx)
		if userID == "" {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required to list own quizzes"})
			return
		}
		quizzes, err = c.quizService.ListByOwner(userID)
	case ctx.Query("subject") != "":
		quizzes, err = c.quizService.ListBySubject(ctx.Query("subject"))
	default:
		quizzes, err = c.quizService.ListPublic()
	}
	if err != nil {
		log.Error().Err(err).Msg("ListQuizzes: service error")
		respondError(ctx, err, "Failed to list quizzes")
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Description Owner or admin only. Omitted fields are left untouched; a provided question list replaces the old one entirely.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param quiz body dto.QuizUpdateDTO true "Fields to update"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuizUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	quiz, err := c.quizService.Update(quizID, middleware.UserID(ctx), middleware.IsAdmin(ctx), req)
	if err != nil {
		respondError(ctx, err, "Failed to update quiz")
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz and its attempts
// @Description Owner or admin only. Attempts referencing the quiz are deleted first; if that cleanup fails the quiz is kept.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	if err := c.quizService.Delete(quizID, middleware.UserID(ctx), middleware.IsAdmin(ctx)); err != nil {
		respondError(ctx, err, "Failed to delete quiz")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
