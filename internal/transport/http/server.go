package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/config"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/admin"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/middleware"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/product"
)

// NewServer builds the echo instance with every route mounted. With
// enforceAdmin false the admin routes are open, which is how the local demo
// catalog is edited.
func NewServer(
	cfg config.ServerConfig,
	products *product.Handler,
	admins *admin.Handler,
	authn middleware.Authenticator,
	enforceAdmin bool,
	logger *zap.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Validator = middleware.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(echomw.RequestID())
	e.Use(middleware.LogRequest(logger.Named("http"), func(c echo.Context) bool {
		return c.Path() == "/health"
	}))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
			return err
		},
	}))
	if cfg.MaxUploadBytes > 0 {
		e.Use(echomw.BodyLimit(fmt.Sprintf("%dB", cfg.MaxUploadBytes)))
	}
	e.Use(middleware.Session(authn, enforceAdmin, logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	products.Register(api, middleware.RequireAdmin())
	admins.Register(api)
	products.RegisterObjects(e)

	return e
}
