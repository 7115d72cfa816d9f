package presenter

import (
	meetingDTO "github.com/meetscribe-team/meetscribe/internal/adapter/dto/meeting"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/usecase/meeting"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	return &meetingDTO.MeetingResponse{
		ID:            m.ID.String(),
		BotID:         m.BotID,
		UserID:        m.UserID.String(),
		Type:          string(m.Type),
		Status:        string(m.Status),
		Title:         m.Title,
		Description:   m.Description,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime(),
		Duration:      m.Duration,
		Participants:  m.GetParticipants(),
		MeetingLink:   m.MeetingLink,
		IsRecording:   m.IsRecording,
		Transcription: m.Transcription,
		Summarization: m.Summarization,
		OutputURL:     m.OutputURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToMeetingList converts a slice of meetings
func ToMeetingList(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToTranscriptResponse converts an assembled transcript
func ToTranscriptResponse(meetingID string, data *meeting.TranscriptData) *meetingDTO.TranscriptResponse {
	if data == nil {
		return nil
	}

	segments := make([]meetingDTO.SegmentResponse, 0, len(data.Segments))
	for _, s := range data.Segments {
		segments = append(segments, meetingDTO.SegmentResponse{
			Timestamp: s.Timestamp,
			Speaker:   s.Speaker,
			Text:      s.Text,
		})
	}

	var utterances []meetingDTO.UtteranceResponse
	for _, u := range data.Utterances {
		utterances = append(utterances, toUtteranceResponse(u))
	}

	return &meetingDTO.TranscriptResponse{
		MeetingID:  meetingID,
		Content:    data.Content,
		Segments:   segments,
		Utterances: utterances,
	}
}

func toUtteranceResponse(u entities.Utterance) meetingDTO.UtteranceResponse {
	var words []meetingDTO.WordResponse
	for _, w := range u.Words {
		words = append(words, meetingDTO.WordResponse{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
	}
	return meetingDTO.UtteranceResponse{
		Speaker:    u.Speaker,
		Text:       u.Text,
		Confidence: u.Confidence,
		Start:      u.Start,
		End:        u.End,
		Words:      words,
	}
}

// ToCalendarResponse converts day buckets
func ToCalendarResponse(buckets map[string][]*entities.Meeting) *meetingDTO.CalendarResponse {
	days := make(map[string][]*meetingDTO.MeetingResponse, len(buckets))
	for day, meetings := range buckets {
		days[day] = ToMeetingList(meetings)
	}
	return &meetingDTO.CalendarResponse{Days: days}
}

// ToStatsResponse converts dashboard counters
func ToStatsResponse(stats *meeting.DashboardStats) *meetingDTO.StatsResponse {
	if stats == nil {
		return nil
	}
	return &meetingDTO.StatsResponse{
		TotalMeetings:        stats.TotalMeetings,
		MeetingMinutes:       stats.MeetingMinutes,
		ActionItems:          stats.ActionItems,
		CompletedActionItems: stats.CompletedActionItems,
		StorageUsed:          stats.StorageUsed,
	}
}
