package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe-team/meetscribe/internal/adapter/presenter"
	meetingUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/meeting"
)

// Dashboard handles dashboard HTTP requests
type Dashboard struct {
	meetingService *meetingUsecase.Service
	logger         *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(meetingService *meetingUsecase.Service, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Stats handles GET /dashboard/stats
// @Summary      Get the user's activity counters
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meeting.StatsResponse
// @Router       /dashboard/stats [get]
func (h *Dashboard) Stats(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	stats, err := h.meetingService.Stats(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToStatsResponse(stats))
}
