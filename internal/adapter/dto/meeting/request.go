package meeting

import "time"

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title        string    `json:"title" validate:"required,min=1,max=255"`
	Description  string    `json:"description,omitempty" validate:"omitempty,max=4000"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	Duration     int       `json:"duration" validate:"required,min=1,max=1440"` // minutes
	Participants []string  `json:"participants,omitempty" validate:"omitempty,dive,email"`
	MeetingLink  *string   `json:"meeting_link,omitempty" validate:"omitempty,url"`
}

// UpdateMeetingRequest represents a partial meeting update
type UpdateMeetingRequest struct {
	Title        *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=4000"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	Duration     *int       `json:"duration,omitempty" validate:"omitempty,min=1,max=1440"`
	Participants []string   `json:"participants,omitempty" validate:"omitempty,dive,email"`
	MeetingLink  *string    `json:"meeting_link,omitempty" validate:"omitempty,url"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=pending scheduled in_progress completed cancelled failed"`
}
