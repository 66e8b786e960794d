package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

const isAdminKey = "is_admin"

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
	IsAdmin(session *auth.Session) bool
}

// BearerToken returns the token from the Authorization header, or "".
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return strings.TrimSpace(token)
}

// Session attaches the session of a valid bearer token to the request
// context. Requests without a usable token continue anonymously. When
// enforce is false every request is treated as admin.
func Session(authn Authenticator, enforce bool, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enforce {
				c.Set(isAdminKey, true)
			}

			token := BearerToken(c)
			if token == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			session, err := authn.Authenticate(ctx, token)
			if err != nil {
				logger.Debug("ignoring bearer token", zap.Error(err))
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(auth.WithSession(ctx, session)))
			c.Set("user", session.Email)
			if authn.IsAdmin(session) {
				c.Set(isAdminKey, true)
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects requests that Session did not mark as admin.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IsAdmin(c) {
				return next(c)
			}
			if _, ok := auth.SessionFromContext(c.Request().Context()); ok {
				return echo.NewHTTPError(http.StatusForbidden, auth.ErrNotAdmin.Error())
			}
			return domain.NewError(domain.KindUnauthenticated, domain.MsgAuthRequired)
		}
	}
}

// IsAdmin reports whether the request may use admin operations.
func IsAdmin(c echo.Context) bool {
	ok, _ := c.Get(isAdminKey).(bool)
	return ok
}
