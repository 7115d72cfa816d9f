package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface using GORM
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// Create creates a new action item
func (r *actionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create action item: %w", err)
	}
	return nil
}

// FindByID retrieves an action item by its ID
func (r *actionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrActionItemNotFound
		}
		return nil, fmt.Errorf("failed to find action item: %w", err)
	}
	return &item, nil
}

// FindByMeetingID retrieves all action items of a meeting, newest first
func (r *actionItemRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}

// FindByUserID retrieves all action items of meetings owned by the user
func (r *actionItemRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Joins("JOIN meetings ON meetings.id = action_items.meeting_id").
		Where("meetings.user_id = ?", userID).
		Order("action_items.created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user action items: %w", err)
	}
	return items, nil
}

// FindPendingByUserID retrieves the user's incomplete action items
func (r *actionItemRepository) FindPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Joins("JOIN meetings ON meetings.id = action_items.meeting_id").
		Where("meetings.user_id = ? AND action_items.completed = false", userID).
		Order("action_items.created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending action items: %w", err)
	}
	return items, nil
}

// Update persists an existing action item
func (r *actionItemRepository) Update(ctx context.Context, item *entities.ActionItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to update action item: %w", err)
	}
	return nil
}

// Delete hard deletes an action item
func (r *actionItemRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.ActionItem{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete action item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
