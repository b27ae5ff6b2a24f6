package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/logger"
)

// RespondError writes err as the standard JSON error body. An AppError is
// answered with its own status, code and message, and its internal cause
// is logged. Any other error is logged and answered with a generic
// internal error.
func RespondError(c *gin.Context, err error) {
	log := logger.Get().With("path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey))

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// ErrorHandler returns a Gin middleware that answers with the last error a
// handler attached to the context via c.Error, unless a response was
// already written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RespondError(c, c.Errors.Last().Err)
	}
}
