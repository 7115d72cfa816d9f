package meeting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/adapter/repository"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/infrastructure/external/botservice"
	usecaseErrors "github.com/meetscribe-team/meetscribe/internal/usecase/errors"
)

type fakeBot struct {
	bots     []botservice.BotMeeting
	started  []string
	stopped  []string
	startErr error
}

func (f *fakeBot) StartRecording(_ context.Context, meetingID string) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	f.started = append(f.started, meetingID)
	return "bot-" + meetingID, nil
}

func (f *fakeBot) StopRecording(_ context.Context, botID string) error {
	f.stopped = append(f.stopped, botID)
	return nil
}

func (f *fakeBot) ListBots(_ context.Context) ([]botservice.BotMeeting, error) {
	return f.bots, nil
}

type fakeStorage struct {
	used int64
}

func (f *fakeStorage) UsedBytes(_ context.Context, _ string) (int64, error) {
	return f.used, nil
}

func newTestService(store *repository.MemoryStore, bot BotClient, storage ObjectStorage) *Service {
	return NewService(
		store.Meetings(),
		store.Transcripts(),
		store.Summaries(),
		store.ActionItems(),
		bot,
		storage,
		nil,
	)
}

func TestScheduleRejectsConflict(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	userID := uuid.New()

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Schedule(ctx, userID, CreateMeetingInput{
		Title:     "Planning",
		StartTime: base,
		Duration:  60,
	}); err != nil {
		t.Fatalf("first schedule failed: %v", err)
	}

	_, err := svc.Schedule(ctx, userID, CreateMeetingInput{
		Title:     "Overlapping",
		StartTime: base.Add(30 * time.Minute),
		Duration:  60,
	})
	if !errors.Is(err, usecaseErrors.ErrScheduleConflict) {
		t.Fatalf("expected schedule conflict, got %v", err)
	}

	// back to back meetings are fine
	if _, err := svc.Schedule(ctx, userID, CreateMeetingInput{
		Title:     "Next slot",
		StartTime: base.Add(60 * time.Minute),
		Duration:  30,
	}); err != nil {
		t.Fatalf("adjacent schedule failed: %v", err)
	}
}

func TestScheduleIgnoresOtherUsers(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Schedule(ctx, uuid.New(), CreateMeetingInput{
		Title:     "Someone else",
		StartTime: base,
		Duration:  60,
	}); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	if _, err := svc.Schedule(ctx, uuid.New(), CreateMeetingInput{
		Title:     "Same slot, different calendar",
		StartTime: base,
		Duration:  60,
	}); err != nil {
		t.Fatalf("expected no conflict across users, got %v", err)
	}
}

func TestGetHidesForeignMeetings(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	owner := uuid.New()

	m, err := svc.Create(ctx, owner, CreateMeetingInput{
		Title:     "Private",
		StartTime: time.Now(),
		Duration:  30,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(ctx, owner, m.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if _, err := svc.Get(ctx, uuid.New(), m.ID); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected not found for foreign reader, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	owner := uuid.New()

	m, err := svc.Schedule(ctx, owner, CreateMeetingInput{
		Title:     "Standup",
		StartTime: time.Now().Add(time.Hour),
		Duration:  15,
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	if _, err := svc.Cancel(ctx, uuid.New(), m.ID); !errors.Is(err, usecaseErrors.ErrNotMeetingOwner) {
		t.Fatalf("expected owner check to fail, got %v", err)
	}

	cancelled, err := svc.Cancel(ctx, owner, m.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != entities.MeetingStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}

	if _, err := svc.Cancel(ctx, owner, m.ID); !errors.Is(err, usecaseErrors.ErrMeetingNotCancelled) {
		t.Fatalf("expected terminal state rejection, got %v", err)
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	owner := uuid.New()

	m, err := svc.Create(ctx, owner, CreateMeetingInput{
		Title:       "Draft",
		Description: "original",
		StartTime:   time.Now(),
		Duration:    30,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "Final"
	updated, err := svc.Update(ctx, owner, m.ID, UpdateMeetingInput{Title: &title})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Final" {
		t.Fatalf("title not updated: %s", updated.Title)
	}
	if updated.Description != "original" {
		t.Fatalf("description should be untouched, got %s", updated.Description)
	}
}

func TestCalendarBuckets(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	owner := uuid.New()

	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	for _, start := range []time.Time{day1, day1.Add(2 * time.Hour), day2} {
		if _, err := svc.Create(ctx, owner, CreateMeetingInput{
			Title:     "m",
			StartTime: start,
			Duration:  30,
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	buckets, err := svc.CalendarBuckets(ctx, owner, day1.Add(-time.Hour), day2.Add(time.Hour))
	if err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if len(buckets["2026-03-02"]) != 2 {
		t.Fatalf("expected 2 meetings on day one, got %d", len(buckets["2026-03-02"]))
	}
	if len(buckets["2026-03-03"]) != 1 {
		t.Fatalf("expected 1 meeting on day two, got %d", len(buckets["2026-03-03"]))
	}

	if _, err := svc.Range(ctx, owner, day2, day1); !errors.Is(err, usecaseErrors.ErrInvalidTimeRange) {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)

	if _, err := svc.Search(ctx, uuid.New(), "   "); !errors.Is(err, usecaseErrors.ErrEmptySearchQuery) {
		t.Fatalf("expected empty query error, got %v", err)
	}
}

func TestRecordingLifecycle(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	bot := &fakeBot{}
	svc := newTestService(store, bot, nil)
	owner := uuid.New()

	m, err := svc.Create(ctx, owner, CreateMeetingInput{
		Title:     "Live",
		StartTime: time.Now(),
		Duration:  60,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	started, err := svc.StartRecording(ctx, owner, m.ID)
	if err != nil {
		t.Fatalf("start recording failed: %v", err)
	}
	if started.BotID == nil || !started.IsRecording {
		t.Fatal("expected bot attached and recording")
	}
	if started.Status != entities.MeetingStatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}

	stopped, err := svc.StopRecording(ctx, owner, m.ID)
	if err != nil {
		t.Fatalf("stop recording failed: %v", err)
	}
	if stopped.IsRecording {
		t.Fatal("expected recording stopped")
	}
	if stopped.Status != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed, got %s", stopped.Status)
	}
	if len(bot.stopped) != 1 {
		t.Fatalf("expected one stop call, got %d", len(bot.stopped))
	}
}

func TestStopRecordingWithoutBot(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, &fakeBot{}, nil)
	owner := uuid.New()

	m, err := svc.Create(ctx, owner, CreateMeetingInput{
		Title:     "Never recorded",
		StartTime: time.Now(),
		Duration:  30,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.StopRecording(ctx, owner, m.ID); !errors.Is(err, usecaseErrors.ErrBotNotAttached) {
		t.Fatalf("expected bot not attached error, got %v", err)
	}
}

func TestSyncBotMeetings(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	owner := uuid.New()
	bot := &fakeBot{bots: []botservice.BotMeeting{
		{
			ID:            "bot-1",
			UserID:        owner.String(),
			Status:        "completed",
			MeetingID:     "meet-abc",
			Transcription: "hello world",
			Summarization: "greeting",
			OutputURL:     "https://storage.example/rec1.mp4",
			CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:     "bot-2",
			UserID: uuid.NewString(),
			Status: "completed",
		},
	}}
	svc := newTestService(store, bot, nil)

	synced, err := svc.SyncBotMeetings(ctx, owner)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(synced) != 1 {
		t.Fatalf("expected 1 synced meeting, got %d", len(synced))
	}
	if synced[0].Type != entities.MeetingTypeBotRecorded {
		t.Fatalf("expected bot_recorded type, got %s", synced[0].Type)
	}
	if synced[0].Transcription != "hello world" {
		t.Fatalf("transcription not applied: %q", synced[0].Transcription)
	}

	// sync again updates in place instead of duplicating
	bot.bots[0].Summarization = "updated"
	if _, err := svc.SyncBotMeetings(ctx, owner); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	all, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 meeting after resync, got %d", len(all))
	}
	if all[0].Summarization != "updated" {
		t.Fatalf("summarization not refreshed: %q", all[0].Summarization)
	}
}

func TestTranscriptPrefersUtterances(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	owner := uuid.New()

	m, err := svc.Create(ctx, owner, CreateMeetingInput{
		Title:     "Recorded",
		StartTime: time.Now(),
		Duration:  30,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	m.Transcription = "first second"
	m.Utterances = []entities.Utterance{
		{Speaker: "A", Text: "first", Confidence: 0.99, Start: 0, End: 1200,
			Words: []entities.Word{{Word: "first", Start: 0, End: 1200, Confidence: 0.99}}},
		{Speaker: "B", Text: "second", Confidence: 0.97, Start: 65_000, End: 66_500},
	}
	if err := store.Meetings().Update(ctx, m); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	transcript, err := svc.Transcript(ctx, owner, m.ID)
	if err != nil {
		t.Fatalf("transcript failed: %v", err)
	}
	if transcript.Content != "first second" {
		t.Fatalf("expected transcription text, got %q", transcript.Content)
	}
	if len(transcript.Utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(transcript.Utterances))
	}
	if transcript.Utterances[0].Confidence != 0.99 || len(transcript.Utterances[0].Words) != 1 {
		t.Fatalf("utterance detail lost: %+v", transcript.Utterances[0])
	}
	segments := transcript.Segments
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Timestamp != "00:01:05" {
		t.Fatalf("unexpected timestamp: %s", segments[1].Timestamp)
	}
}

func TestTranscriptMissing(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, nil)
	owner := uuid.New()

	m, err := svc.Create(ctx, owner, CreateMeetingInput{
		Title:     "Silent",
		StartTime: time.Now(),
		Duration:  30,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Transcript(ctx, owner, m.ID); !errors.Is(err, usecaseErrors.ErrTranscriptNotFound) {
		t.Fatalf("expected transcript not found, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newTestService(store, nil, &fakeStorage{used: 2 * 1024 * 1024})
	owner := uuid.New()

	for _, d := range []int{30, 45} {
		m, err := svc.Create(ctx, owner, CreateMeetingInput{
			Title:     "m",
			StartTime: time.Now(),
			Duration:  d,
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		done := entities.NewActionItem(m.ID, "ship it", "alice")
		done.Completed = true
		if err := store.ActionItems().Create(ctx, done); err != nil {
			t.Fatalf("create action item failed: %v", err)
		}
		if err := store.ActionItems().Create(ctx, entities.NewActionItem(m.ID, "review", "bob")); err != nil {
			t.Fatalf("create action item failed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, owner)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalMeetings != 2 {
		t.Fatalf("expected 2 meetings, got %d", stats.TotalMeetings)
	}
	if stats.MeetingMinutes != 75 {
		t.Fatalf("expected 75 minutes, got %d", stats.MeetingMinutes)
	}
	if stats.ActionItems != 4 || stats.CompletedActionItems != 2 {
		t.Fatalf("unexpected action item counts: %d/%d", stats.CompletedActionItems, stats.ActionItems)
	}
	if stats.StorageUsed == "" {
		t.Fatal("expected storage usage to be reported")
	}
}
