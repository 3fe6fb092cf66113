package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// respondError maps application error codes to HTTP statuses. Unknown errors
// are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		logger.Error("unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Une erreur interne est survenue.",
			"code":  errors.ErrCodeInternalError,
		})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case errors.ErrCodeValidation:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeQuizClosed:
		status = http.StatusForbidden
	case errors.ErrCodeAlreadyExists:
		status = http.StatusConflict
	case errors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
}
