package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/meetscribe-team/meetscribe/internal/adapter/dto/meeting"
	"github.com/meetscribe-team/meetscribe/internal/adapter/presenter"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	meetingUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	meetingService *meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"error":   "unauthorized",
		"message": "user not authenticated",
	})
}

func invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":   "invalid_request",
		"message": err.Error(),
	})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":   "validation_failed",
		"message": err.Error(),
	})
}

func pathID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	m, err := h.meetingService.Create(c.Request().Context(), userID, meetingUsecase.CreateMeetingInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		Participants: req.Participants,
		MeetingLink:  req.MeetingLink,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// ScheduleMeeting handles POST /meetings/schedule
// @Summary      Schedule a meeting with conflict detection
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      409      {object}  map[string]interface{}  "Time slot conflicts with an existing meeting"
// @Router       /meetings/schedule [post]
func (h *Meeting) ScheduleMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	m, err := h.meetingService.Schedule(c.Request().Context(), userID, meetingUsecase.CreateMeetingInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		Participants: req.Participants,
		MeetingLink:  req.MeetingLink,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
// @Summary      List the user's meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  meeting.MeetingResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetings, err := h.meetingService.List(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

// RecentMeetings handles GET /meetings/recent
// @Summary      List the user's most recent meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Page size"
// @Success      200  {array}  meeting.MeetingResponse
// @Router       /meetings/recent [get]
func (h *Meeting) RecentMeetings(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return invalidRequest(c, err)
		}
		limit = parsed
	}

	meetings, err := h.meetingService.Recent(c.Request().Context(), userID, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

func parseRange(c echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// MeetingsInRange handles GET /meetings/range
// @Summary      List meetings starting inside a time window
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        start  query  string  true  "Window start (RFC3339)"
// @Param        end    query  string  true  "Window end (RFC3339)"
// @Success      200  {array}  meeting.MeetingResponse
// @Router       /meetings/range [get]
func (h *Meeting) MeetingsInRange(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	from, to, err := parseRange(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	meetings, err := h.meetingService.Range(c.Request().Context(), userID, from, to)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

// Calendar handles GET /meetings/calendar
// @Summary      Group meetings in a window by calendar day
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        start  query  string  true  "Window start (RFC3339)"
// @Param        end    query  string  true  "Window end (RFC3339)"
// @Success      200  {object}  meeting.CalendarResponse
// @Router       /meetings/calendar [get]
func (h *Meeting) Calendar(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	from, to, err := parseRange(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	buckets, err := h.meetingService.CalendarBuckets(c.Request().Context(), userID, from, to)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToCalendarResponse(buckets))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get one meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	m, err := h.meetingService.Get(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// UpdateMeeting handles PUT /meetings/:id
// @Summary      Update a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                        true  "Meeting ID"
// @Param        request  body  meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      403  {object}  map[string]interface{}  "Not the meeting owner"
// @Router       /meetings/{id} [patch]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	input := meetingUsecase.UpdateMeetingInput{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		Participants: req.Participants,
		MeetingLink:  req.MeetingLink,
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		input.Status = &status
	}

	m, err := h.meetingService.Update(c.Request().Context(), userID, meetingID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// CancelMeeting handles POST /meetings/:id/cancel
// @Summary      Cancel a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      403  {object}  map[string]interface{}  "Not the meeting owner"
// @Failure      409  {object}  map[string]interface{}  "Meeting already in a terminal state"
// @Router       /meetings/{id}/cancel [post]
func (h *Meeting) CancelMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	m, err := h.meetingService.Cancel(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}  "Not the meeting owner"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	if err := h.meetingService.Delete(c.Request().Context(), userID, meetingID); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": true})
}

// SearchMeetings handles GET /search/meetings
// @Summary      Search the user's meetings by title or bot id
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Search text"
// @Success      200  {array}  meeting.MeetingResponse
// @Router       /search/meetings [get]
func (h *Meeting) SearchMeetings(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetings, err := h.meetingService.Search(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

// SyncMeetings handles POST /meetings/sync
// @Summary      Pull bot recordings into the user's meeting list
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  meeting.MeetingResponse
// @Failure      502  {object}  map[string]interface{}  "Bot service unavailable"
// @Router       /meetings/sync [post]
func (h *Meeting) SyncMeetings(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetings, err := h.meetingService.SyncBotMeetings(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

// StartRecording handles POST /meetings/:id/recording/start
// @Summary      Dispatch a recording bot to the meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      502  {object}  map[string]interface{}  "Bot service unavailable"
// @Router       /meetings/{id}/recording/start [post]
func (h *Meeting) StartRecording(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	m, err := h.meetingService.StartRecording(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// StopRecording handles POST /meetings/:id/recording/stop
// @Summary      Stop the meeting's recording bot
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /meetings/{id}/recording/stop [post]
func (h *Meeting) StopRecording(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	m, err := h.meetingService.StopRecording(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// GetTranscript handles GET /meetings/:id/transcript
// @Summary      Get a meeting transcript
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.TranscriptResponse
// @Failure      404  {object}  map[string]interface{}  "No transcript available"
// @Router       /meetings/{id}/transcript [get]
func (h *Meeting) GetTranscript(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	transcript, err := h.meetingService.Transcript(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(meetingID.String(), transcript))
}

// GetSummary handles GET /meetings/:id/summary
// @Summary      Get a meeting summary
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {object}  meeting.SummaryResponse
// @Failure      404  {object}  map[string]interface{}  "No summary available"
// @Router       /meetings/{id}/summary [get]
func (h *Meeting) GetSummary(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	content, err := h.meetingService.Summary(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &meetingDTO.SummaryResponse{
		MeetingID: meetingID.String(),
		Content:   content,
	})
}
