package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/unsa-memon/quiz-app-backend/internal/apperrors"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/middleware"
	"github.com/unsa-memon/quiz-app-backend/internal/service"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// SubmitAttempt godoc
// @Summary Submit answers for a quiz
// @Description Grades the submitted responses against the quiz and stores the attempt. Anonymous submissions are accepted and get a synthesized identity. Responses for unknown question ids are dropped silently.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.AttemptSubmitDTO true "Responses and time taken"
// @Success 201 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed submission"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if req.Responses == nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Submission must contain a responses array"})
		return
	}

	log.Info().Uint("quizID", quizID).Int("responseCount", len(req.Responses)).Msg("Received attempt submission")

	result, err := c.attemptService.Submit(quizID, middleware.UserID(ctx), req)
	if err != nil {
		respondError(ctx, err, "Failed to submit attempt")
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// GetAttemptResult godoc
// @Summary Get a reconciled attempt result
// @Description Returns the attempt with percentage and total marks recomputed from the current quiz definition and each response enriched with its question for review.
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttemptResult(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	result, err := c.attemptService.GetResult(attemptID)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve attempt")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetMyAttempts godoc
// @Summary List the caller's attempts
// @Tags Attempts
// @Produce json
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /attempts [get]
func (c *AttemptController) GetMyAttempts(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	attempts, err := c.attemptService.GetUserAttempts(userID)
	if err != nil {
		respondError(ctx, err, "Failed to list attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(ctx *gin.Context, err error, message string) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsMalformedInput(err):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	case apperrors.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case apperrors.IsForbidden(err):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	}
}
