package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_VALIDATION_FAILED
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN
	ErrorCode_CONFLICT

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_CREDENTIALS
	ErrorCode_AUTH_USER_NOT_FOUND
	ErrorCode_AUTH_USER_ALREADY_EXISTS
	ErrorCode_AUTH_OAUTH_FAILED

	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_SCHEDULE_CONFLICT
	ErrorCode_MEETING_ACCESS_DENIED
	ErrorCode_MEETING_INVALID_STATE

	ErrorCode_TRANSCRIPT_NOT_FOUND
	ErrorCode_SUMMARY_NOT_FOUND
	ErrorCode_ACTION_ITEM_NOT_FOUND

	ErrorCode_BOT_SERVICE_FAILED
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
	ErrorCode_DB_QUERY_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                   "UNKNOWN",
	ErrorCode_HTTP_OK:                   "OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_VALIDATION_FAILED:         "VALIDATION_FAILED",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:            "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:         "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:           "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                 "FORBIDDEN",
	ErrorCode_CONFLICT:                  "CONFLICT",
	ErrorCode_AUTH_INVALID_TOKEN:        "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:        "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:  "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:       "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:  "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_OAUTH_FAILED:         "AUTH_OAUTH_FAILED",
	ErrorCode_MEETING_NOT_FOUND:         "MEETING_NOT_FOUND",
	ErrorCode_MEETING_SCHEDULE_CONFLICT: "MEETING_SCHEDULE_CONFLICT",
	ErrorCode_MEETING_ACCESS_DENIED:     "MEETING_ACCESS_DENIED",
	ErrorCode_MEETING_INVALID_STATE:     "MEETING_INVALID_STATE",
	ErrorCode_TRANSCRIPT_NOT_FOUND:      "TRANSCRIPT_NOT_FOUND",
	ErrorCode_SUMMARY_NOT_FOUND:         "SUMMARY_NOT_FOUND",
	ErrorCode_ACTION_ITEM_NOT_FOUND:     "ACTION_ITEM_NOT_FOUND",
	ErrorCode_BOT_SERVICE_FAILED:        "BOT_SERVICE_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:  "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:           "DB_QUERY_FAILED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
