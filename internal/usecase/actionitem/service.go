package actionitem

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
	usecaseErrors "github.com/meetscribe-team/meetscribe/internal/usecase/errors"
)

// SortKey selects the ordering applied by Sort
type SortKey string

const (
	SortByDueDate   SortKey = "dueDate"
	SortByAssignee  SortKey = "assignee"
	SortByCreatedAt SortKey = "createdAt"
)

// CreateInput carries the fields accepted when creating an action item
type CreateInput struct {
	MeetingID   uuid.UUID
	Description string
	Assignee    string
	DueDate     *time.Time
}

// UpdateInput carries a partial update; nil fields are left unchanged
type UpdateInput struct {
	Description *string
	Assignee    *string
	DueDate     *time.Time
	Completed   *bool
}

// StatsInvalidator drops a user's cached dashboard counters after a write
type StatsInvalidator func(ctx context.Context, userID uuid.UUID)

// Service implements action item use cases. Every operation resolves
// ownership through the parent meeting.
type Service struct {
	itemRepo        repositories.ActionItemRepository
	meetingRepo     repositories.MeetingRepository
	invalidateStats StatsInvalidator
}

// NewService creates a new action item service. invalidateStats may be nil
// when no dashboard cache is in play.
func NewService(itemRepo repositories.ActionItemRepository, meetingRepo repositories.MeetingRepository, invalidateStats StatsInvalidator) *Service {
	return &Service{
		itemRepo:        itemRepo,
		meetingRepo:     meetingRepo,
		invalidateStats: invalidateStats,
	}
}

func (s *Service) statsChanged(ctx context.Context, userID uuid.UUID) {
	if s.invalidateStats != nil {
		s.invalidateStats(ctx, userID)
	}
}

func (s *Service) ownedMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Meeting, error) {
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

// Create stores a new action item under a meeting owned by userID
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*entities.ActionItem, error) {
	if _, err := s.ownedMeeting(ctx, userID, input.MeetingID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}

	item := entities.NewActionItem(input.MeetingID, input.Description, input.Assignee)
	item.DueDate = input.DueDate
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}
	s.statsChanged(ctx, userID)
	return item, nil
}

// Get returns an action item whose parent meeting is owned by userID
func (s *Service) Get(ctx context.Context, userID, itemID uuid.UUID) (*entities.ActionItem, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, entities.ErrActionItemNotFound) {
			return nil, usecaseErrors.ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to find action item: %w", err)
	}
	if _, err := s.ownedMeeting(ctx, userID, item.MeetingID); err != nil {
		return nil, usecaseErrors.ErrActionItemNotFound
	}
	return item, nil
}

// ListByMeeting returns the action items of a meeting owned by userID
func (s *Service) ListByMeeting(ctx context.Context, userID, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	if _, err := s.ownedMeeting(ctx, userID, meetingID); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}

// ListByUser returns every action item across the user's meetings
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.ActionItem, error) {
	items, err := s.itemRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}

// Pending returns the user's incomplete action items
func (s *Service) Pending(ctx context.Context, userID uuid.UUID) ([]*entities.ActionItem, error) {
	items, err := s.itemRepo.FindPendingByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending action items: %w", err)
	}
	return items, nil
}

// Update applies a partial update to an action item owned through its
// parent meeting
func (s *Service) Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateInput) (*entities.ActionItem, error) {
	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, usecaseErrors.ErrInvalidInput
		}
		item.Description = *input.Description
	}
	if input.Assignee != nil {
		item.Assignee = *input.Assignee
	}
	if input.DueDate != nil {
		item.DueDate = input.DueDate
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update action item: %w", err)
	}
	s.statsChanged(ctx, userID)
	return item, nil
}

// Delete removes an action item owned through its parent meeting
func (s *Service) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return err
	}

	deleted, err := s.itemRepo.Delete(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("failed to delete action item: %w", err)
	}
	if !deleted {
		return usecaseErrors.ErrActionItemNotFound
	}
	s.statsChanged(ctx, userID)
	return nil
}

// Sort orders items in place by the given key. Due-date ordering puts
// undated items last; creation ordering is newest first.
func Sort(items []*entities.ActionItem, key SortKey) {
	switch key {
	case SortByDueDate:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].DueDate, items[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortByAssignee:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Assignee) < strings.ToLower(items[j].Assignee)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

// FilterByAssignee keeps items whose assignee matches, ignoring case
func FilterByAssignee(items []*entities.ActionItem, assignee string) []*entities.ActionItem {
	if assignee == "" {
		return items
	}
	want := strings.ToLower(assignee)
	out := make([]*entities.ActionItem, 0, len(items))
	for _, item := range items {
		if strings.ToLower(item.Assignee) == want {
			out = append(out, item)
		}
	}
	return out
}
