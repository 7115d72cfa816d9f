package entities

import (
	"time"

	"github.com/google/uuid"
)

// Summary is a free-text summary attached to a meeting
type Summary struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Summary
func (Summary) TableName() string {
	return "summaries"
}

// NewSummary creates a new summary for a meeting
func NewSummary(meetingID uuid.UUID, content string) *Summary {
	return &Summary{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
