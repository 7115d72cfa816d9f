package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/meetscribe-team/meetscribe/internal/infrastructure/http/middleware"
	"github.com/meetscribe-team/meetscribe/internal/usecase/auth"
	"github.com/meetscribe-team/meetscribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authService       *auth.Service
	authHandler       *Auth
	meetingHandler    *Meeting
	actionItemHandler *ActionItem
	dashboardHandler  *Dashboard
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authService *auth.Service,
	authHandler *Auth,
	meetingHandler *Meeting,
	actionItemHandler *ActionItem,
	dashboardHandler *Dashboard,
) *Router {
	return &Router{
		cfg:               cfg,
		authService:       authService,
		authHandler:       authHandler,
		meetingHandler:    meetingHandler,
		actionItemHandler: actionItemHandler,
		dashboardHandler:  dashboardHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public auth endpoints
	api.POST("/register", rt.authHandler.Register)
	api.POST("/login", rt.authHandler.Login)
	if rt.cfg.OAuth.Google.Enabled {
		api.GET("/auth/google/login", rt.authHandler.GoogleLogin)
		api.GET("/auth/google/callback", rt.authHandler.GoogleCallback)
	}

	// Everything below requires a bearer token
	authed := api.Group("", middleware.EchoAuth(rt.authService))

	authed.GET("/me", rt.authHandler.Me)
	authed.GET("/dashboard/stats", rt.dashboardHandler.Stats)
	authed.GET("/search/meetings", rt.meetingHandler.SearchMeetings)

	meetings := authed.Group("/meetings")
	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.POST("/schedule", rt.meetingHandler.ScheduleMeeting)
	meetings.GET("/recent", rt.meetingHandler.RecentMeetings)
	meetings.GET("/range", rt.meetingHandler.MeetingsInRange)
	meetings.GET("/calendar", rt.meetingHandler.Calendar)
	meetings.POST("/sync", rt.meetingHandler.SyncMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PATCH("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.POST("/:id/cancel", rt.meetingHandler.CancelMeeting)
	meetings.POST("/:id/recording/start", rt.meetingHandler.StartRecording)
	meetings.POST("/:id/recording/stop", rt.meetingHandler.StopRecording)
	meetings.GET("/:id/transcript", rt.meetingHandler.GetTranscript)
	meetings.GET("/:id/summary", rt.meetingHandler.GetSummary)
	meetings.GET("/:id/action-items", rt.actionItemHandler.MeetingActionItems)

	items := authed.Group("/action-items")
	items.POST("", rt.actionItemHandler.CreateActionItem)
	items.GET("", rt.actionItemHandler.ListActionItems)
	items.GET("/pending", rt.actionItemHandler.PendingActionItems)
	items.PATCH("/:id", rt.actionItemHandler.UpdateActionItem)
	items.DELETE("/:id", rt.actionItemHandler.DeleteActionItem)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
