package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartclaim/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /:userId/stats
// @Summary Get claim statistics
// @Description Totals per normalized status and per currency, plus the latest claim time.
// @Tags stats
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} StatsResponse "Aggregate statistics"
// @Failure 404 {object} ErrorBody "User not found"
// @Router /{userId}/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	stats, err := h.statsService.Summary(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
