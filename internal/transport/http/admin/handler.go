package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type meResponse struct {
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler exposes admin login and logout.
type Handler struct {
	auth *auth.Service
}

func NewHandler(authService *auth.Service) *Handler {
	return &Handler{auth: authService}
}

// Register mounts the auth routes under api.
func (h *Handler) Register(api *echo.Group) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Logout(c echo.Context) error {
	if token := middleware.BearerToken(c); token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	session, ok := auth.SessionFromContext(c.Request().Context())
	if !ok {
		return domain.NewError(domain.KindUnauthenticated, domain.MsgAuthRequired)
	}
	return c.JSON(http.StatusOK, &meResponse{
		Email:     session.Email,
		IsAdmin:   h.auth.IsAdmin(session),
		ExpiresAt: session.ExpiresAt,
	})
}
