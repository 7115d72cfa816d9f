package entities

import "errors"

// Entity-level validation and lookup errors
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidTitle    = errors.New("invalid meeting title")
	ErrInvalidDuration = errors.New("invalid meeting duration")
	ErrInvalidStatus   = errors.New("invalid meeting status")
	ErrInvalidType     = errors.New("invalid meeting type")

	ErrUserNotFound       = errors.New("user not found")
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrActionItemNotFound = errors.New("action item not found")
)
