package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingType represents how a meeting was created
type MeetingType string

const (
	MeetingTypeScheduled   MeetingType = "scheduled"
	MeetingTypeBotRecorded MeetingType = "bot_recorded"
)

// IsValid checks if the meeting type is valid
func (t MeetingType) IsValid() bool {
	switch t {
	case MeetingTypeScheduled, MeetingTypeBotRecorded:
		return true
	}
	return false
}

// MeetingStatus represents the current status of a meeting
type MeetingStatus string

const (
	MeetingStatusPending    MeetingStatus = "pending"
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
	MeetingStatusFailed     MeetingStatus = "failed"
)

// IsValid checks if the meeting status is valid
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusPending, MeetingStatusScheduled, MeetingStatusInProgress,
		MeetingStatusCompleted, MeetingStatusCancelled, MeetingStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status is terminal in practice.
// The storage layer does not enforce this.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCompleted || s == MeetingStatusCancelled
}

// Word is a single recognized word with timing info
type Word struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Utterance is one speaker's continuous spoken segment
type Utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Words      []Word  `json:"words,omitempty"`
}

// Meeting represents a recorded or scheduled conversation event owned by a user
type Meeting struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BotID  *string   `json:"bot_id,omitempty" gorm:"type:varchar(255);index"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User   *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Type   MeetingType   `json:"type" gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Status MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	Title        string         `json:"title" gorm:"type:varchar(255);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	StartTime    time.Time      `json:"start_time" gorm:"index"`
	Duration     int            `json:"duration"` // minutes
	Participants datatypes.JSON `json:"participants" gorm:"type:jsonb;default:'[]'"`
	MeetingLink  *string        `json:"meeting_link,omitempty" gorm:"type:varchar(500)"`

	IsRecording   bool        `json:"is_recording" gorm:"default:false;not null"`
	Transcription string      `json:"transcription" gorm:"type:text"`
	Summarization string      `json:"summarization" gorm:"type:text"`
	OutputURL     string      `json:"output_url" gorm:"type:varchar(500)"`
	Utterances    []Utterance `json:"utterances,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting with server-assigned id and timestamps
func NewMeeting(userID uuid.UUID, title string) *Meeting {
	now := time.Now()
	return &Meeting{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         MeetingTypeScheduled,
		Status:       MeetingStatusPending,
		Title:        title,
		Participants: datatypes.JSON([]byte("[]")),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks the meeting fields
func (m *Meeting) Validate() error {
	if m.Title == "" {
		return ErrInvalidTitle
	}
	if m.Duration < 0 {
		return ErrInvalidDuration
	}
	if !m.Type.IsValid() {
		return ErrInvalidType
	}
	if !m.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// SetParticipants stores the participant email list as JSON
func (m *Meeting) SetParticipants(participants []string) error {
	if participants == nil {
		participants = []string{}
	}
	raw, err := json.Marshal(participants)
	if err != nil {
		return err
	}
	m.Participants = datatypes.JSON(raw)
	return nil
}

// GetParticipants returns the participant email list
func (m *Meeting) GetParticipants() []string {
	if len(m.Participants) == 0 {
		return []string{}
	}
	var participants []string
	if err := json.Unmarshal(m.Participants, &participants); err != nil {
		return []string{}
	}
	return participants
}

// Touch refreshes the updated timestamp
func (m *Meeting) Touch() {
	m.UpdatedAt = time.Now()
}

// EndTime returns the exclusive end of the meeting interval
func (m *Meeting) EndTime() time.Time {
	return m.StartTime.Add(time.Duration(m.Duration) * time.Minute)
}

// Overlaps reports whether [start, start+duration) intersects this
// meeting's interval. Touching intervals do not overlap.
func (m *Meeting) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return start.Before(m.EndTime()) && m.StartTime.Before(end)
}

// Cancel marks the meeting as cancelled
func (m *Meeting) Cancel() {
	m.Status = MeetingStatusCancelled
	m.Touch()
}
