package actionitem

import "time"

// CreateActionItemRequest represents the request to create an action item
type CreateActionItemRequest struct {
	MeetingID   string     `json:"meeting_id" validate:"required,uuid"`
	Description string     `json:"description" validate:"required,min=1,max=4000"`
	Assignee    string     `json:"assignee,omitempty" validate:"omitempty,max=255"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateActionItemRequest represents a partial action item update
type UpdateActionItemRequest struct {
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1,max=4000"`
	Assignee    *string    `json:"assignee,omitempty" validate:"omitempty,max=255"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// ListActionItemsRequest represents list filters and ordering
type ListActionItemsRequest struct {
	Assignee string `query:"assignee" validate:"omitempty,max=255"`
	SortBy   string `query:"sort_by" validate:"omitempty,oneof=dueDate assignee createdAt"`
}
