package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/external/botservice"
	usecaseErrors "github.com/meetscribe-team/meetscribe/internal/usecase/errors"
)

const (
	defaultRecentLimit = 6
	statsCacheTTL      = 5 * time.Minute
)

// BotClient dispatches recording bots to live meetings
type BotClient interface {
	StartRecording(ctx context.Context, meetingID string) (string, error)
	StopRecording(ctx context.Context, botID string) error
	ListBots(ctx context.Context) ([]botservice.BotMeeting, error)
}

// ObjectStorage reports recording storage consumption per user prefix
type ObjectStorage interface {
	UsedBytes(ctx context.Context, prefix string) (int64, error)
}

// Cache is a TTL key-value store for derived values
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CreateMeetingInput carries the fields accepted when creating a meeting
type CreateMeetingInput struct {
	Title        string
	Description  string
	StartTime    time.Time
	Duration     int
	Participants []string
	MeetingLink  *string
}

// UpdateMeetingInput carries a partial update; nil fields are left unchanged
type UpdateMeetingInput struct {
	Title        *string
	Description  *string
	StartTime    *time.Time
	Duration     *int
	Participants []string
	MeetingLink  *string
	Status       *entities.MeetingStatus
}

// DashboardStats aggregates per-user activity counters
type DashboardStats struct {
	TotalMeetings        int    `json:"totalMeetings"`
	MeetingMinutes       int    `json:"meetingMinutes"`
	ActionItems          int    `json:"actionItems"`
	CompletedActionItems int    `json:"completedActionItems"`
	StorageUsed          string `json:"storageUsed"`
}

// Service implements meeting management use cases
type Service struct {
	meetingRepo    repositories.MeetingRepository
	transcriptRepo repositories.TranscriptRepository
	summaryRepo    repositories.SummaryRepository
	actionItemRepo repositories.ActionItemRepository
	bot            BotClient
	storage        ObjectStorage
	cache          Cache
}

// NewService creates a new meeting service. Bot, storage and cache are
// optional; the corresponding features degrade gracefully when absent.
func NewService(
	meetingRepo repositories.MeetingRepository,
	transcriptRepo repositories.TranscriptRepository,
	summaryRepo repositories.SummaryRepository,
	actionItemRepo repositories.ActionItemRepository,
	bot BotClient,
	storage ObjectStorage,
	cache Cache,
) *Service {
	return &Service{
		meetingRepo:    meetingRepo,
		transcriptRepo: transcriptRepo,
		summaryRepo:    summaryRepo,
		actionItemRepo: actionItemRepo,
		bot:            bot,
		storage:        storage,
		cache:          cache,
	}
}

// Create stores a new ad-hoc meeting owned by userID
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateMeetingInput) (*entities.Meeting, error) {
	m := entities.NewMeeting(userID, input.Title)
	m.StartTime = input.StartTime
	m.Duration = input.Duration
	m.Description = input.Description
	m.MeetingLink = input.MeetingLink
	if err := m.SetParticipants(input.Participants); err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	s.invalidateStats(ctx, userID)
	return m, nil
}

// Schedule stores a new meeting after checking the owner's calendar for
// conflicts. Meetings whose intervals merely touch do not conflict.
func (s *Service) Schedule(ctx context.Context, userID uuid.UUID, input CreateMeetingInput) (*entities.Meeting, error) {
	if input.Duration <= 0 {
		return nil, entities.ErrInvalidDuration
	}

	end := input.StartTime.Add(time.Duration(input.Duration) * time.Minute)
	overlapping, err := s.meetingRepo.FindOverlapping(ctx, userID, input.StartTime, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check schedule: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, usecaseErrors.ErrScheduleConflict
	}

	m := entities.NewMeeting(userID, input.Title)
	m.StartTime = input.StartTime
	m.Duration = input.Duration
	m.Status = entities.MeetingStatusScheduled
	m.Description = input.Description
	m.MeetingLink = input.MeetingLink
	if err := m.SetParticipants(input.Participants); err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	s.invalidateStats(ctx, userID)
	return m, nil
}

// Get returns a meeting owned by userID. Meetings belonging to other
// users are reported as not found.
func (s *Service) Get(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	if m.UserID != userID {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return m, nil
}

// List returns all meetings owned by userID, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// Recent returns the user's most recently created meetings. A limit of
// zero or below falls back to the default page size.
func (s *Service) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	meetings, err := s.meetingRepo.FindRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meetings: %w", err)
	}
	return meetings, nil
}

// Range returns meetings whose start time falls within [from, to)
func (s *Service) Range(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entities.Meeting, error) {
	if !from.Before(to) {
		return nil, usecaseErrors.ErrInvalidTimeRange
	}
	meetings, err := s.meetingRepo.FindInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings in range: %w", err)
	}
	return meetings, nil
}

// CalendarBuckets groups the user's meetings in [from, to) by local
// calendar day, keyed yyyy-mm-dd
func (s *Service) CalendarBuckets(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string][]*entities.Meeting, error) {
	meetings, err := s.Range(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]*entities.Meeting)
	for _, m := range meetings {
		day := m.StartTime.Format("2006-01-02")
		buckets[day] = append(buckets[day], m)
	}
	return buckets, nil
}

// Update applies a partial update to a meeting owned by userID
func (s *Service) Update(ctx context.Context, userID, meetingID uuid.UUID, input UpdateMeetingInput) (*entities.Meeting, error) {
	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	if m.UserID != userID {
		return nil, usecaseErrors.ErrNotMeetingOwner
	}

	if input.Title != nil {
		m.Title = *input.Title
	}
	if input.Description != nil {
		m.Description = *input.Description
	}
	if input.StartTime != nil {
		m.StartTime = *input.StartTime
	}
	if input.Duration != nil {
		m.Duration = *input.Duration
	}
	if input.Participants != nil {
		if err := m.SetParticipants(input.Participants); err != nil {
			return nil, fmt.Errorf("failed to encode participants: %w", err)
		}
	}
	if input.MeetingLink != nil {
		m.MeetingLink = input.MeetingLink
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
		m.Status = *input.Status
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	s.invalidateStats(ctx, userID)
	return m, nil
}

// Cancel marks a meeting cancelled. Only the owner may cancel, and
// meetings already in a terminal state are rejected.
func (s *Service) Cancel(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	if m.UserID != userID {
		return nil, usecaseErrors.ErrNotMeetingOwner
	}
	if m.Status.IsTerminal() {
		return nil, usecaseErrors.ErrMeetingNotCancelled
	}
	m.Cancel()

	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	s.invalidateStats(ctx, userID)
	return m, nil
}

// Delete removes a meeting owned by userID
func (s *Service) Delete(ctx context.Context, userID, meetingID uuid.UUID) error {
	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return usecaseErrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to find meeting: %w", err)
	}
	if m.UserID != userID {
		return usecaseErrors.ErrNotMeetingOwner
	}

	deleted, err := s.meetingRepo.Delete(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	if !deleted {
		return usecaseErrors.ErrMeetingNotFound
	}
	s.invalidateStats(ctx, userID)
	return nil
}

// Search finds the user's meetings whose title or bot id matches q,
// case-insensitively
func (s *Service) Search(ctx context.Context, userID uuid.UUID, q string) ([]*entities.Meeting, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, usecaseErrors.ErrEmptySearchQuery
	}
	meetings, err := s.meetingRepo.Search(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search meetings: %w", err)
	}
	return meetings, nil
}

// StartRecording dispatches a recording bot to the meeting and stores
// the returned bot id
func (s *Service) StartRecording(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	if s.bot == nil {
		return nil, usecaseErrors.ErrBotServiceUnavailable
	}

	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	if m.UserID != userID {
		return nil, usecaseErrors.ErrNotMeetingOwner
	}

	botID, err := s.bot.StartRecording(ctx, m.ID.String())
	if err != nil {
		return nil, usecaseErrors.ErrBotServiceUnavailable
	}

	m.BotID = &botID
	m.IsRecording = true
	m.Status = entities.MeetingStatusInProgress
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return m, nil
}

// StopRecording tells the bot service to leave the meeting
func (s *Service) StopRecording(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
	if s.bot == nil {
		return nil, usecaseErrors.ErrBotServiceUnavailable
	}

	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	if m.UserID != userID {
		return nil, usecaseErrors.ErrNotMeetingOwner
	}
	if m.BotID == nil {
		return nil, usecaseErrors.ErrBotNotAttached
	}

	if err := s.bot.StopRecording(ctx, *m.BotID); err != nil {
		return nil, usecaseErrors.ErrBotServiceUnavailable
	}

	m.IsRecording = false
	m.Status = entities.MeetingStatusCompleted
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return m, nil
}

// SyncBotMeetings pulls every bot recording from the bot service and
// upserts the user's bot-recorded meetings by bot id
func (s *Service) SyncBotMeetings(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	if s.bot == nil {
		return nil, usecaseErrors.ErrBotServiceUnavailable
	}

	bots, err := s.bot.ListBots(ctx)
	if err != nil {
		return nil, usecaseErrors.ErrBotServiceUnavailable
	}

	var synced []*entities.Meeting
	for i := range bots {
		bot := bots[i]
		if bot.UserID != userID.String() {
			continue
		}

		m, err := s.meetingRepo.FindByBotID(ctx, bot.ID)
		if err != nil {
			if !errors.Is(err, entities.ErrMeetingNotFound) {
				return nil, fmt.Errorf("failed to find meeting by bot id: %w", err)
			}
			m = entities.NewMeeting(userID, "Recorded meeting "+bot.MeetingID)
			m.Type = entities.MeetingTypeBotRecorded
			m.StartTime = bot.CreatedAt
			m.BotID = &bot.ID
		}

		applyBotState(m, &bot)

		if err := s.upsert(ctx, m); err != nil {
			return nil, err
		}
		synced = append(synced, m)
	}
	s.invalidateStats(ctx, userID)
	return synced, nil
}

func applyBotState(m *entities.Meeting, bot *botservice.BotMeeting) {
	m.IsRecording = bot.IsRecording
	m.Transcription = bot.Transcription
	m.Summarization = bot.Summarization
	m.OutputURL = bot.OutputURL
	if status := entities.MeetingStatus(bot.Status); status.IsValid() {
		m.Status = status
	}
}

func (s *Service) upsert(ctx context.Context, m *entities.Meeting) error {
	if _, err := s.meetingRepo.FindByID(ctx, m.ID); err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			if err := s.meetingRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("failed to create meeting: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to find meeting: %w", err)
	}
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	return nil
}

// TranscriptData is the assembled transcript of a meeting: the raw
// transcription text, timestamped lines, and the bot's utterances with
// confidence and per-word timing when it captured any.
type TranscriptData struct {
	Content    string
	Segments   []entities.Segment
	Utterances []entities.Utterance
}

// Transcript returns the structured transcript of a meeting. Utterances
// captured by the bot take precedence over a stored transcript row.
func (s *Service) Transcript(ctx context.Context, userID, meetingID uuid.UUID) (*TranscriptData, error) {
	m, err := s.Get(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}

	if len(m.Utterances) > 0 {
		return &TranscriptData{
			Content:    m.Transcription,
			Segments:   utterancesToSegments(m.Utterances),
			Utterances: m.Utterances,
		}, nil
	}

	t, err := s.transcriptRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrTranscriptNotFound) {
			return nil, usecaseErrors.ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("failed to find transcript: %w", err)
	}
	return &TranscriptData{
		Content:  m.Transcription,
		Segments: t.Segments,
	}, nil
}

func utterancesToSegments(utterances []entities.Utterance) []entities.Segment {
	segments := make([]entities.Segment, 0, len(utterances))
	for _, u := range utterances {
		d := time.Duration(u.Start) * time.Millisecond
		ts := fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
		segments = append(segments, entities.Segment{
			Timestamp: ts,
			Speaker:   u.Speaker,
			Text:      u.Text,
		})
	}
	return segments
}

// Summary returns the meeting's summary text. The bot-produced summary
// takes precedence over a stored summary row.
func (s *Service) Summary(ctx context.Context, userID, meetingID uuid.UUID) (string, error) {
	m, err := s.Get(ctx, userID, meetingID)
	if err != nil {
		return "", err
	}
	if m.Summarization != "" {
		return m.Summarization, nil
	}

	sum, err := s.summaryRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrSummaryNotFound) {
			return "", usecaseErrors.ErrSummaryNotFound
		}
		return "", fmt.Errorf("failed to find summary: %w", err)
	}
	return sum.Content, nil
}

// Stats computes the user's dashboard counters. Results are cached for
// a short TTL since the dashboard is polled frequently.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	key := statsCacheKey(userID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cached DashboardStats
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	meetings, err := s.meetingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	items, err := s.actionItemRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}

	stats := &DashboardStats{
		TotalMeetings: len(meetings),
		ActionItems:   len(items),
		StorageUsed:   humanize.Bytes(0),
	}
	for _, m := range meetings {
		stats.MeetingMinutes += m.Duration
	}
	for _, it := range items {
		if it.Completed {
			stats.CompletedActionItems++
		}
	}
	if s.storage != nil {
		used, err := s.storage.UsedBytes(ctx, userID.String()+"/")
		if err == nil {
			stats.StorageUsed = humanize.Bytes(uint64(used))
		}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, key, string(raw), statsCacheTTL)
		}
	}
	return stats, nil
}

func statsCacheKey(userID uuid.UUID) string {
	return "dashboard:stats:" + userID.String()
}

func (s *Service) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, statsCacheKey(userID))
}

// InvalidateStats drops the user's cached dashboard counters. Sibling
// services whose writes change the counters call this after a mutation.
func (s *Service) InvalidateStats(ctx context.Context, userID uuid.UUID) {
	s.invalidateStats(ctx, userID)
}
