package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByBotID retrieves a meeting by its external bot-recording ID
	FindByBotID(ctx context.Context, botID string) (*entities.Meeting, error)

	// FindByUserID retrieves all meetings owned by a user, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Meeting, error)

	// FindRecent retrieves the most recently created meetings of a user
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Meeting, error)

	// FindInRange retrieves the user's meetings whose start time falls in [start, end)
	FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entities.Meeting, error)

	// FindOverlapping retrieves the user's non-cancelled meetings whose
	// [start, start+duration) interval intersects [start, end)
	FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entities.Meeting, error)

	// Search retrieves the user's meetings matching a case-insensitive
	// substring of the title or bot meeting id
	Search(ctx context.Context, userID uuid.UUID, query string) ([]*entities.Meeting, error)

	// Update persists an existing meeting, refreshing its updated timestamp
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete hard deletes a meeting. Returns false when the id does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
