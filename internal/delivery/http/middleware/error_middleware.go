package middleware

import (
	"errors"
	"net/http"

	"go-match-backend/internal/delivery/http/response"
	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"
	"go-match-backend/pkg/apperror"
	"go-match-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := MatchError(err, "Resource not found")
		reqID := response.RequestID(c)

		if appErr.Code >= http.StatusInternalServerError {
			// Never expose internal error details to clients
			logger.Log.Error("request failed",
				"request_id", reqID, "path", c.FullPath(), "status", appErr.Code, "error", err)
		} else {
			logger.Log.Debug("request rejected",
				"request_id", reqID, "path", c.FullPath(), "status", appErr.Code, "error", err)
		}

		if appErr.Code == http.StatusInternalServerError {
			response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", nil)
			return
		}
		response.Error(c, appErr.Code, appErr.Message, nil)
	}
}

// MatchError maps matching errors to an AppError. notFoundMessage is the
// user-actionable text used for domain.ErrNotFound. Errors that are already
// AppErrors pass through unchanged.
func MatchError(err error, notFoundMessage string) *apperror.AppError {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFoundMessage).WithCause(err)
	case errors.Is(err, scoring.ErrInvalidArgument):
		return apperror.BadRequest(err.Error()).WithCause(err)
	case errors.Is(err, scoring.ErrEmptyInput):
		return apperror.NotFound("Nothing to compare: no matching data is available yet").WithCause(err)
	case errors.Is(err, scoring.ErrDimensionMismatch):
		return apperror.Unprocessable("Embeddings have incompatible dimensions").WithCause(err)
	case errors.Is(err, domain.ErrUnavailable):
		return apperror.New(http.StatusServiceUnavailable, "Matching data is temporarily unavailable, please retry shortly", err)
	case errors.Is(err, scoring.ErrJobClosed):
		return apperror.Conflict("This job is closed and no longer accepts matching").WithCause(err)
	default:
		return apperror.Internal(err)
	}
}
