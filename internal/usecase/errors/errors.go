package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrEmailAlreadyUsed   = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrUserNotFound       = errors.New("user not found")
)

// Meeting errors
var (
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrNotMeetingOwner     = errors.New("user does not own this meeting")
	ErrScheduleConflict    = errors.New("meeting time conflicts with an existing meeting")
	ErrMeetingNotCancelled = errors.New("meeting cannot be cancelled in its current state")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrEmptySearchQuery    = errors.New("search query is required")
)

// Sub-resource errors
var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrActionItemNotFound = errors.New("action item not found")
)

// Bot service errors
var (
	ErrBotServiceUnavailable = errors.New("bot recording service unavailable")
	ErrBotNotAttached        = errors.New("meeting has no bot recording attached")
)
