package entities

import (
	"time"

	"github.com/google/uuid"
)

// Segment is one timestamped line of a legacy transcript
type Segment struct {
	Timestamp string `json:"timestamp"` // Format: 00:00:00
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// Transcript is the legacy stored transcript model. Newer meetings embed
// utterances on the Meeting row instead.
type Transcript struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Segments  []Segment `json:"content" gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Transcript
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript for a meeting
func NewTranscript(meetingID uuid.UUID, segments []Segment) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Segments:  segments,
		CreatedAt: time.Now(),
	}
}
