package http

import (
	"errors"
	"net/http"

	"bidding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps the errs taxonomy onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCapacityExceeded), errors.Is(err, errs.ErrTransientStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// currentOf returns the state snapshot carried by invalid state and
// conflict errors.
func currentOf(err error) any {
	var invalidState *errs.InvalidStateError
	if errors.As(err, &invalidState) {
		return invalidState.Current
	}

	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return conflict.Current
	}

	return nil
}

func (s *Server) respondError(c echo.Context, err error) error {
	status := statusOf(err)
	resp := errorResponse{
		Code:    status,
		Message: err.Error(),
		Current: currentOf(err),
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
		if status == http.StatusInternalServerError {
			resp.Message = http.StatusText(status)
		}
	}

	return c.JSON(status, resp)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: message})
}
