package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem is a task extracted from or attached to a meeting
type ActionItem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Assignee    string     `json:"assignee" gorm:"type:varchar(255)"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed" gorm:"default:false;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a new action item for a meeting
func NewActionItem(meetingID uuid.UUID, description, assignee string) *ActionItem {
	return &ActionItem{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Description: description,
		Assignee:    assignee,
		CreatedAt:   time.Now(),
	}
}
