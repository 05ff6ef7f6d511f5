package middleware

import (
	goerrors "errors"
	"net/http"

	"rento/errors"
	"rento/response"
	"rento/services/logger"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a service error onto an HTTP status
func StatusFor(err error) int {
	switch {
	case goerrors.Is(err, errors.ErrPropertyNotFound),
		goerrors.Is(err, errors.ErrTicketNotFound),
		goerrors.Is(err, errors.ErrBookingNotFound),
		goerrors.Is(err, errors.ErrUserNotFound):
		return http.StatusNotFound
	case goerrors.Is(err, errors.ErrUserAlreadyExists),
		goerrors.Is(err, errors.ErrPropertyExists),
		goerrors.Is(err, errors.ErrBookingConflict):
		return http.StatusConflict
	case goerrors.Is(err, errors.ErrInvalidCredentials),
		goerrors.Is(err, errors.ErrUnauthorized),
		goerrors.Is(err, errors.ErrSessionNotFound),
		goerrors.Is(err, errors.ErrSessionExpired):
		return http.StatusUnauthorized
	case goerrors.Is(err, errors.ErrUploadDisabled):
		return http.StatusServiceUnavailable
	case errors.IsAppError(err),
		goerrors.Is(err, errors.ErrInvalidInput),
		goerrors.Is(err, errors.ErrMissingRequired),
		goerrors.Is(err, errors.ErrInvalidFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func messageFor(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "Internal server error"
	}
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}

// ErrorHandler renders the last error attached with c.Error
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		response.Error(c, status, messageFor(err, status))
	}
}
