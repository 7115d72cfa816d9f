package meeting

import "time"

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID            string    `json:"id"`
	BotID         *string   `json:"bot_id,omitempty"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Duration      int       `json:"duration"`
	Participants  []string  `json:"participants"`
	MeetingLink   *string   `json:"meeting_link,omitempty"`
	IsRecording   bool      `json:"is_recording"`
	Transcription string    `json:"transcription,omitempty"`
	Summarization string    `json:"summarization,omitempty"`
	OutputURL     string    `json:"output_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SegmentResponse is one transcript line
type SegmentResponse struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// WordResponse is one recognized word with timing info
type WordResponse struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// UtteranceResponse is one speaker turn with recognition detail
type UtteranceResponse struct {
	Speaker    string         `json:"speaker"`
	Text       string         `json:"text"`
	Confidence float64        `json:"confidence"`
	Start      float64        `json:"start"`
	End        float64        `json:"end"`
	Words      []WordResponse `json:"words,omitempty"`
}

// TranscriptResponse represents a meeting transcript
type TranscriptResponse struct {
	MeetingID  string              `json:"meeting_id"`
	Content    string              `json:"content"`
	Segments   []SegmentResponse   `json:"segments"`
	Utterances []UtteranceResponse `json:"utterances,omitempty"`
}

// SummaryResponse represents a meeting summary
type SummaryResponse struct {
	MeetingID string `json:"meeting_id"`
	Content   string `json:"content"`
}

// CalendarResponse groups meetings by calendar day
type CalendarResponse struct {
	Days map[string][]*MeetingResponse `json:"days"`
}

// StatsResponse represents the dashboard counters
type StatsResponse struct {
	TotalMeetings        int    `json:"totalMeetings"`
	MeetingMinutes       int    `json:"meetingMinutes"`
	ActionItems          int    `json:"actionItems"`
	CompletedActionItems int    `json:"completedActionItems"`
	StorageUsed          string `json:"storageUsed"`
}
