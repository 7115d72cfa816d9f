package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
)

func seedMeeting(t *testing.T, store *MemoryStore, userID uuid.UUID, title string, createdAt time.Time) *entities.Meeting {
	t.Helper()
	m := entities.NewMeeting(userID, title)
	m.CreatedAt = createdAt
	m.UpdatedAt = createdAt
	if err := store.Meetings().Create(context.Background(), m); err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	return m
}

func TestMemoryMeetings_NewestFirst(t *testing.T) {
	store := NewMemoryStore()
	userID := uuid.New()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	seedMeeting(t, store, userID, "oldest", base)
	seedMeeting(t, store, userID, "middle", base.Add(time.Hour))
	seedMeeting(t, store, userID, "newest", base.Add(2*time.Hour))
	seedMeeting(t, store, uuid.New(), "other user", base.Add(3*time.Hour))

	meetings, err := store.Meetings().FindByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meetings) != 3 {
		t.Fatalf("expected 3 meetings, got %d", len(meetings))
	}
	if meetings[0].Title != "newest" || meetings[2].Title != "oldest" {
		t.Fatalf("expected newest-first ordering, got %q..%q", meetings[0].Title, meetings[2].Title)
	}

	recent, err := store.Meetings().FindRecent(context.Background(), userID, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Title != "newest" {
		t.Fatalf("unexpected recent result: %+v", recent)
	}
}

func TestMemoryMeetings_DeleteNonexistent(t *testing.T) {
	store := NewMemoryStore()

	found, err := store.Meetings().Delete(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("delete must not error on missing id: %v", err)
	}
	if found {
		t.Fatal("expected delete of missing meeting to report not found")
	}
}

func TestMemoryMeetings_Search_CaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	userID := uuid.New()
	now := time.Now()

	seedMeeting(t, store, userID, "Weekly Team Standup", now)
	seedMeeting(t, store, userID, "Quarterly Review", now.Add(time.Minute))
	seedMeeting(t, store, uuid.New(), "Another Standup", now.Add(2*time.Minute))

	results, err := store.Meetings().Search(context.Background(), userID, "standup")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Weekly Team Standup" {
		t.Fatalf("unexpected match: %s", results[0].Title)
	}
}

func TestMemoryMeetings_FindOverlapping(t *testing.T) {
	store := NewMemoryStore()
	userID := uuid.New()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	existing := entities.NewMeeting(userID, "Existing")
	existing.Status = entities.MeetingStatusScheduled
	existing.StartTime = start
	existing.Duration = 60
	if err := store.Meetings().Create(context.Background(), existing); err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := entities.NewMeeting(userID, "Cancelled")
	cancelled.Status = entities.MeetingStatusCancelled
	cancelled.StartTime = start
	cancelled.Duration = 60
	if err := store.Meetings().Create(context.Background(), cancelled); err != nil {
		t.Fatalf("create: %v", err)
	}

	// [10:30, 11:30) overlaps [10:00, 11:00)
	overlapping, err := store.Meetings().FindOverlapping(
		context.Background(), userID,
		start.Add(30*time.Minute), start.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("overlapping: %v", err)
	}
	if len(overlapping) != 1 || overlapping[0].Title != "Existing" {
		t.Fatalf("expected only the scheduled meeting to conflict, got %d", len(overlapping))
	}

	// [11:00, 12:00) touches but does not overlap
	touching, err := store.Meetings().FindOverlapping(
		context.Background(), userID,
		start.Add(60*time.Minute), start.Add(120*time.Minute))
	if err != nil {
		t.Fatalf("overlapping: %v", err)
	}
	if len(touching) != 0 {
		t.Fatalf("touching interval must not conflict, got %d", len(touching))
	}
}

func TestMemoryActionItems_PendingScopedToOwner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	ownMeeting := seedMeeting(t, store, owner, "Mine", time.Now())
	otherMeeting := seedMeeting(t, store, stranger, "Theirs", time.Now())

	pending := entities.NewActionItem(ownMeeting.ID, "Send notes", "alice")
	done := entities.NewActionItem(ownMeeting.ID, "Book room", "bob")
	done.Completed = true
	foreign := entities.NewActionItem(otherMeeting.ID, "Not mine", "carol")

	for _, item := range []*entities.ActionItem{pending, done, foreign} {
		if err := store.ActionItems().Create(ctx, item); err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	items, err := store.ActionItems().FindPendingByUserID(ctx, owner)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 pending item, got %d", len(items))
	}
	if items[0].Description != "Send notes" {
		t.Fatalf("unexpected item: %s", items[0].Description)
	}
}

func TestMemoryActionItems_DeleteNonexistent(t *testing.T) {
	store := NewMemoryStore()

	found, err := store.ActionItems().Delete(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("delete must not error on missing id: %v", err)
	}
	if found {
		t.Fatal("expected delete of missing item to report not found")
	}
}

func TestMemoryMeetings_UpdateRefreshesTimestamp(t *testing.T) {
	store := NewMemoryStore()
	userID := uuid.New()
	m := seedMeeting(t, store, userID, "Sync", time.Now().Add(-time.Hour))

	before := m.UpdatedAt
	m.Title = "Renamed Sync"
	if err := store.Meetings().Update(context.Background(), m); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.Meetings().FindByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.UpdatedAt.After(before) {
		t.Fatal("update must refresh updated_at")
	}
	if got.CreatedAt.After(got.UpdatedAt) {
		t.Fatal("created_at must stay <= updated_at")
	}
}
