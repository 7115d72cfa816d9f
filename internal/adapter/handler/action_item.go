package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	actionItemDTO "github.com/meetscribe-team/meetscribe/internal/adapter/dto/actionitem"
	"github.com/meetscribe-team/meetscribe/internal/adapter/presenter"
	actionItemUsecase "github.com/meetscribe-team/meetscribe/internal/usecase/actionitem"
)

// ActionItem handles action item HTTP requests
type ActionItem struct {
	itemService *actionItemUsecase.Service
	logger      *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(itemService *actionItemUsecase.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{
		itemService: itemService,
		logger:      logger,
	}
}

// CreateActionItem handles POST /action-items
// @Summary      Create an action item under one of the user's meetings
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      actionitem.CreateActionItemRequest  true  "Action item"
// @Success      201      {object}  actionitem.ActionItemResponse
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /action-items [post]
func (h *ActionItem) CreateActionItem(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req actionItemDTO.CreateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return invalidRequest(c, err)
	}

	item, err := h.itemService.Create(c.Request().Context(), userID, actionItemUsecase.CreateInput{
		MeetingID:   meetingID,
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToActionItemResponse(item))
}

// ListActionItems handles GET /action-items
// @Summary      List the user's action items with optional filter and sort
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        assignee  query  string  false  "Filter by assignee, case-insensitive"
// @Param        sort_by   query  string  false  "dueDate, assignee or createdAt"
// @Success      200  {array}  actionitem.ActionItemResponse
// @Router       /action-items [get]
func (h *ActionItem) ListActionItems(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req actionItemDTO.ListActionItemsRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	items, err := h.itemService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items = actionItemUsecase.FilterByAssignee(items, req.Assignee)
	actionItemUsecase.Sort(items, actionItemUsecase.SortKey(req.SortBy))

	return HandleSuccess(h.logger, c, presenter.ToActionItemList(items))
}

// PendingActionItems handles GET /action-items/pending
// @Summary      List the user's incomplete action items
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  actionitem.ActionItemResponse
// @Router       /action-items/pending [get]
func (h *ActionItem) PendingActionItems(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	items, err := h.itemService.Pending(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToActionItemList(items))
}

// MeetingActionItems handles GET /meetings/:id/action-items
// @Summary      List a meeting's action items
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Meeting ID"
// @Success      200  {array}  actionitem.ActionItemResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/action-items [get]
func (h *ActionItem) MeetingActionItems(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	meetingID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	items, err := h.itemService.ListByMeeting(c.Request().Context(), userID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToActionItemList(items))
}

// UpdateActionItem handles PUT /action-items/:id
// @Summary      Update an action item
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                              true  "Action item ID"
// @Param        request  body  actionitem.UpdateActionItemRequest  true  "Fields to change"
// @Success      200  {object}  actionitem.ActionItemResponse
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [patch]
func (h *ActionItem) UpdateActionItem(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	itemID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	var req actionItemDTO.UpdateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.itemService.Update(c.Request().Context(), userID, itemID, actionItemUsecase.UpdateInput{
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// DeleteActionItem handles DELETE /action-items/:id
// @Summary      Delete an action item
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Action item ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [delete]
func (h *ActionItem) DeleteActionItem(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	itemID, err := pathID(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	if err := h.itemService.Delete(c.Request().Context(), userID, itemID); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{"deleted": true})
}
