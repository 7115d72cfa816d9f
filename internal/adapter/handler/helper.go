package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe-team/meetscribe/errors"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	usecaseErrors "github.com/meetscribe-team/meetscribe/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "created",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusCreated, resp)
}

// HandleError centralizes error handling and logging. Use case sentinel
// errors are translated to AppError first so every handler shares one
// status mapping.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
	}

	return c.JSON(appErr.HTTPCode, body)
}

func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, usecaseErrors.ErrTokenExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid):
		return errors.ErrInvalidToken()
	case stdErrors.Is(err, usecaseErrors.ErrEmailAlreadyUsed),
		stdErrors.Is(err, usecaseErrors.ErrUsernameTaken):
		return errors.ErrAlreadyExists("user")
	case stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrUserNotFound()

	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrNotMeetingOwner):
		return errors.ErrMeetingAccessDenied("")
	case stdErrors.Is(err, usecaseErrors.ErrScheduleConflict):
		return errors.ErrScheduleConflict("")
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotCancelled):
		return errors.ErrMeetingInvalidState("", "terminal")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidTimeRange),
		stdErrors.Is(err, usecaseErrors.ErrEmptySearchQuery),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())

	case stdErrors.Is(err, usecaseErrors.ErrTranscriptNotFound):
		return errors.ErrTranscriptNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrSummaryNotFound):
		return errors.ErrSummaryNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrActionItemNotFound):
		return errors.ErrActionItemNotFound("")

	case stdErrors.Is(err, usecaseErrors.ErrBotServiceUnavailable):
		return errors.ErrBotServiceFailed("dispatch", err)
	case stdErrors.Is(err, usecaseErrors.ErrBotNotAttached):
		return errors.ErrInvalidArgument("no recording bot attached to this meeting")

	case stdErrors.Is(err, entities.ErrInvalidTitle),
		stdErrors.Is(err, entities.ErrInvalidDuration),
		stdErrors.Is(err, entities.ErrInvalidStatus),
		stdErrors.Is(err, entities.ErrInvalidType),
		stdErrors.Is(err, entities.ErrInvalidUsername),
		stdErrors.Is(err, entities.ErrInvalidEmail),
		stdErrors.Is(err, entities.ErrInvalidName):
		return errors.ErrInvalidArgument(err.Error())
	}

	return errors.ErrInternal(err)
}
