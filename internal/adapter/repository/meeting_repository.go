package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface using GORM
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting by ID: %w", err)
	}
	return &meeting, nil
}

// FindByBotID retrieves a meeting by its external bot-recording ID
func (r *meetingRepository) FindByBotID(ctx context.Context, botID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("bot_id = ?", botID).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting by bot ID: %w", err)
	}
	return &meeting, nil
}

// FindByUserID retrieves all meetings owned by a user, newest first
func (r *meetingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// FindRecent retrieves the most recently created meetings of a user
func (r *meetingRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent meetings: %w", err)
	}
	return meetings, nil
}

// FindInRange retrieves the user's meetings whose start time falls in [start, end)
func (r *meetingRepository) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, start, end).
		Order("start_time ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings in range: %w", err)
	}
	return meetings, nil
}

// FindOverlapping retrieves the user's non-cancelled meetings intersecting [start, end)
func (r *meetingRepository) FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, entities.MeetingStatusCancelled).
		Where("start_time < ? AND (start_time + duration * interval '1 minute') > ?", end, start).
		Order("start_time ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping meetings: %w", err)
	}
	return meetings, nil
}

// Search retrieves the user's meetings matching a substring of title or bot id
func (r *meetingRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	pattern := fmt.Sprintf("%%%s%%", query)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("title ILIKE ? OR bot_id ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search meetings: %w", err)
	}
	return meetings, nil
}

// Update persists an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	meeting.Touch()
	if err := r.db.WithContext(ctx).Save(meeting).Error; err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	return nil
}

// Delete hard deletes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete meeting: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
