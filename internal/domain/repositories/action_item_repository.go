package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
)

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	// Create creates a new action item
	Create(ctx context.Context, item *entities.ActionItem) error

	// FindByID retrieves an action item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// FindByMeetingID retrieves all action items of a meeting, newest first
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)

	// FindByUserID retrieves all action items whose owning meeting belongs
	// to the user, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ActionItem, error)

	// FindPendingByUserID retrieves the user's incomplete action items
	FindPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.ActionItem, error)

	// Update persists an existing action item
	Update(ctx context.Context, item *entities.ActionItem) error

	// Delete hard deletes an action item. Returns false when the id does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
