package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
)

// MemoryStore bundles in-memory implementations of every repository
// interface. It backs the development storage driver and the handler tests;
// production uses the GORM implementations against PostgreSQL.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]*entities.User
	meetings    map[uuid.UUID]*entities.Meeting
	transcripts map[uuid.UUID]*entities.Transcript
	summaries   map[uuid.UUID]*entities.Summary
	actionItems map[uuid.UUID]*entities.ActionItem
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[uuid.UUID]*entities.User),
		meetings:    make(map[uuid.UUID]*entities.Meeting),
		transcripts: make(map[uuid.UUID]*entities.Transcript),
		summaries:   make(map[uuid.UUID]*entities.Summary),
		actionItems: make(map[uuid.UUID]*entities.ActionItem),
	}
}

// Users returns the user repository view of the store
func (s *MemoryStore) Users() repositories.UserRepository { return (*memoryUserRepo)(s) }

// Meetings returns the meeting repository view of the store
func (s *MemoryStore) Meetings() repositories.MeetingRepository { return (*memoryMeetingRepo)(s) }

// Transcripts returns the transcript repository view of the store
func (s *MemoryStore) Transcripts() repositories.TranscriptRepository {
	return (*memoryTranscriptRepo)(s)
}

// Summaries returns the summary repository view of the store
func (s *MemoryStore) Summaries() repositories.SummaryRepository { return (*memorySummaryRepo)(s) }

// ActionItems returns the action item repository view of the store
func (s *MemoryStore) ActionItems() repositories.ActionItemRepository {
	return (*memoryActionItemRepo)(s)
}

// User repository

type memoryUserRepo MemoryStore

func (r *memoryUserRepo) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *memoryUserRepo) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// Meeting repository

type memoryMeetingRepo MemoryStore

func (r *memoryMeetingRepo) Create(_ context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	cp := *meeting
	r.meetings[meeting.ID] = &cp
	return nil
}

func (r *memoryMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meeting, ok := r.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	cp := *meeting
	return &cp, nil
}

func (r *memoryMeetingRepo) FindByBotID(_ context.Context, botID string) (*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, meeting := range r.meetings {
		if meeting.BotID != nil && *meeting.BotID == botID {
			cp := *meeting
			return &cp, nil
		}
	}
	return nil, entities.ErrMeetingNotFound
}

func (r *memoryMeetingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(m *entities.Meeting) bool {
		return m.UserID == userID
	}), nil
}

func (r *memoryMeetingRepo) FindRecent(_ context.Context, userID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meetings := r.collect(func(m *entities.Meeting) bool {
		return m.UserID == userID
	})
	if limit > 0 && len(meetings) > limit {
		meetings = meetings[:limit]
	}
	return meetings, nil
}

func (r *memoryMeetingRepo) FindInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meetings := r.collect(func(m *entities.Meeting) bool {
		return m.UserID == userID && !m.StartTime.Before(start) && m.StartTime.Before(end)
	})
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})
	return meetings, nil
}

func (r *memoryMeetingRepo) FindOverlapping(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	duration := int(end.Sub(start) / time.Minute)
	meetings := r.collect(func(m *entities.Meeting) bool {
		return m.UserID == userID &&
			m.Status != entities.MeetingStatusCancelled &&
			m.Overlaps(start, duration)
	})
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})
	return meetings, nil
}

func (r *memoryMeetingRepo) Search(_ context.Context, userID uuid.UUID, query string) ([]*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(query)
	return r.collect(func(m *entities.Meeting) bool {
		if m.UserID != userID {
			return false
		}
		if strings.Contains(strings.ToLower(m.Title), q) {
			return true
		}
		return m.BotID != nil && strings.Contains(strings.ToLower(*m.BotID), q)
	}), nil
}

func (r *memoryMeetingRepo) Update(_ context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[meeting.ID]; !ok {
		return entities.ErrMeetingNotFound
	}
	meeting.Touch()
	cp := *meeting
	r.meetings[meeting.ID] = &cp
	return nil
}

func (r *memoryMeetingRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[id]; !ok {
		return false, nil
	}
	delete(r.meetings, id)
	return true, nil
}

// collect returns matching meetings sorted newest first. Caller must hold the lock.
func (r *memoryMeetingRepo) collect(match func(*entities.Meeting) bool) []*entities.Meeting {
	meetings := make([]*entities.Meeting, 0)
	for _, m := range r.meetings {
		if match(m) {
			cp := *m
			meetings = append(meetings, &cp)
		}
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
	})
	return meetings
}

// Transcript repository

type memoryTranscriptRepo MemoryStore

func (r *memoryTranscriptRepo) Create(_ context.Context, transcript *entities.Transcript) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transcript.ID == uuid.Nil {
		transcript.ID = uuid.New()
	}
	cp := *transcript
	r.transcripts[transcript.ID] = &cp
	return nil
}

func (r *memoryTranscriptRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *entities.Transcript
	for _, t := range r.transcripts {
		if t.MeetingID != meetingID {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	if latest == nil {
		return nil, entities.ErrTranscriptNotFound
	}
	cp := *latest
	return &cp, nil
}

// Summary repository

type memorySummaryRepo MemoryStore

func (r *memorySummaryRepo) Create(_ context.Context, summary *entities.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	cp := *summary
	r.summaries[summary.ID] = &cp
	return nil
}

func (r *memorySummaryRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *entities.Summary
	for _, s := range r.summaries {
		if s.MeetingID != meetingID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, entities.ErrSummaryNotFound
	}
	cp := *latest
	return &cp, nil
}

// Action item repository

type memoryActionItemRepo MemoryStore

func (r *memoryActionItemRepo) Create(_ context.Context, item *entities.ActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.actionItems[item.ID] = &cp
	return nil
}

func (r *memoryActionItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.actionItems[id]
	if !ok {
		return nil, entities.ErrActionItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *memoryActionItemRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item *entities.ActionItem) bool {
		return item.MeetingID == meetingID
	}), nil
}

func (r *memoryActionItemRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item *entities.ActionItem) bool {
		return r.ownedBy(item, userID)
	}), nil
}

func (r *memoryActionItemRepo) FindPendingByUserID(_ context.Context, userID uuid.UUID) ([]*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(item *entities.ActionItem) bool {
		return !item.Completed && r.ownedBy(item, userID)
	}), nil
}

func (r *memoryActionItemRepo) Update(_ context.Context, item *entities.ActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actionItems[item.ID]; !ok {
		return entities.ErrActionItemNotFound
	}
	cp := *item
	r.actionItems[item.ID] = &cp
	return nil
}

func (r *memoryActionItemRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actionItems[id]; !ok {
		return false, nil
	}
	delete(r.actionItems, id)
	return true, nil
}

// ownedBy reports whether the item's owning meeting belongs to the user.
// Caller must hold the lock.
func (r *memoryActionItemRepo) ownedBy(item *entities.ActionItem, userID uuid.UUID) bool {
	meeting, ok := r.meetings[item.MeetingID]
	return ok && meeting.UserID == userID
}

// collect returns matching items sorted newest first. Caller must hold the lock.
func (r *memoryActionItemRepo) collect(match func(*entities.ActionItem) bool) []*entities.ActionItem {
	items := make([]*entities.ActionItem, 0)
	for _, item := range r.actionItems {
		if match(item) {
			cp := *item
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}
