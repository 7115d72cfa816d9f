package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
)

// TranscriptRepository defines the interface for legacy transcript data access
type TranscriptRepository interface {
	// Create creates a new transcript
	Create(ctx context.Context, transcript *entities.Transcript) error

	// FindByMeetingID retrieves the latest transcript of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)
}

// SummaryRepository defines the interface for summary data access
type SummaryRepository interface {
	// Create creates a new summary
	Create(ctx context.Context, summary *entities.Summary) error

	// FindByMeetingID retrieves the latest summary of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Summary, error)
}
