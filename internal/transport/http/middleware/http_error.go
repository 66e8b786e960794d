package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// ResponseError is the JSON body of every failed request.
type ResponseError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidationFailed, domain.KindInvalidFile, domain.KindUnparsableURL:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case domain.KindBackendUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse converts any handler error into a ResponseError.
func ToResponse(err error) *ResponseError {
	var (
		re *ResponseError
		de *domain.Error
		he *echo.HTTPError
	)

	switch {
	case errors.As(err, &re):
		return re
	case errors.As(err, &de):
		return &ResponseError{Status: StatusFor(de.Kind), Code: string(de.Kind), Message: de.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &ResponseError{Status: http.StatusUnauthorized, Code: "invalid_credentials", Message: err.Error()}
	case errors.Is(err, auth.ErrNotAdmin):
		return &ResponseError{Status: http.StatusForbidden, Code: "forbidden", Message: err.Error()}
	case errors.Is(err, auth.ErrRemoteNotConfigured):
		return &ResponseError{Status: http.StatusServiceUnavailable, Code: string(domain.KindBackendUnavailable), Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrTokenRevoked):
		return &ResponseError{Status: http.StatusUnauthorized, Code: string(domain.KindUnauthenticated), Message: err.Error()}
	case errors.As(err, &he):
		if he.Code == http.StatusRequestEntityTooLarge {
			return &ResponseError{Status: he.Code, Code: string(domain.KindTooLarge), Message: domain.MsgFileTooLarge}
		}
		return &ResponseError{Status: he.Code, Code: statusCode(he.Code), Message: fmt.Sprint(he.Message)}
	case errors.Is(err, context.Canceled):
		return &ResponseError{Status: 499, Code: "canceled", Message: err.Error()}
	default:
		return &ResponseError{
			Status:  http.StatusInternalServerError,
			Code:    string(domain.KindPersistenceFailed),
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}

// ErrorHandler renders errors as {"error": kind, "message": text}.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := ToResponse(err)
		if resp.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			logger.Error("could not write error response", zap.Int("status", resp.Status), zap.Error(err))
		}
	}
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
