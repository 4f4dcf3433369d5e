package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
	"github.com/unsa-memon/quiz-app-backend/internal/middleware"
	"github.com/unsa-memon/quiz-app-backend/internal/service"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetMyAnalytics godoc
// @Summary Aggregate the caller's attempt statistics
// @Description Total attempts, average percentage, per-subject breakdown and the five most recent attempts. has_attempts distinguishes an empty history from a genuine 0% average.
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.AnalyticsSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /analytics [get]
func (c *AnalyticsController) GetMyAnalytics(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}
	summary, err := c.analyticsService.Aggregate(userID)
	if err != nil {
		respondError(ctx, err, "Failed to aggregate analytics")
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
