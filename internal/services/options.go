package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/healthcheck"
	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/perfume-catalog/internal/app/product/repo"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/delete_image"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/set_product_active"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/upload_image"
	"github.com/light-bringer/perfume-catalog/internal/config"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
	httpserver "github.com/light-bringer/perfume-catalog/internal/transport/http"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/admin"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/product"
)

// Infrastructure holds the resources the application is wired onto.
// Gateway is nil when the remote backend is not configured.
type Infrastructure struct {
	Gateway contracts.Gateway
	Store   contracts.LocalStore
	Clock   clock.Clock
	Logger  *zap.Logger
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Store         *repo.BoltStore

	Backend        contracts.ProductBackend
	Auth           *auth.Service
	Probe          *healthcheck.Probe
	ProductHandler *product.Handler
	AdminHandler   *admin.Handler
	Server         *echo.Echo
}

// NewServiceOptions opens the local store and, when configured, the Spanner
// client, then wires every component on top of them.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Infrastructure
	clk := clock.NewRealClock()

	store, err := repo.OpenBoltStore(cfg.Local.StorePath, clk, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	infra := Infrastructure{Store: store, Clock: clk, Logger: logger}

	var spannerClient *spanner.Client
	if cfg.RemoteConfigured() {
		spannerClient, err = spanner.NewClient(ctx, cfg.Spanner.DatabasePath())
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		infra.Gateway = repo.NewSpannerGateway(spannerClient, cfg.Storage.BaseURL(), true, clk)
	}

	opts := Wire(cfg, infra)
	opts.SpannerClient = spannerClient
	opts.Store = store
	return opts, nil
}

// Wire builds the application on infra. The backend is chosen once here:
// remote when a gateway is present, local otherwise.
func Wire(cfg *config.Config, infra Infrastructure) *ServiceOptions {
	logger := infra.Logger
	clk := infra.Clock
	remote := infra.Gateway != nil

	// 2. Storage helpers
	codec := imagepath.NewCodec(cfg.Storage.BaseURL(), cfg.Storage.Bucket, clk)
	probe := healthcheck.NewProbe(infra.Gateway, codec, logger.Named("healthcheck"))

	// 3. Backends
	local := repo.NewLocalBackend(infra.Store, clk, logger.Named("local"))

	var (
		backend  contracts.ProductBackend = local
		fallback contracts.ProductBackend
		objects  product.ObjectReader
	)
	if remote {
		backend = repo.NewRemoteBackend(infra.Gateway, codec, probe, clk, logger.Named("remote"))
		fallback = local
		objects = infra.Gateway
	}
	logger.Info("product backend selected", zap.String("backend", backend.Name()))

	// 4. Command use cases (write operations)
	createProductUseCase := create_product.NewInteractor(backend, logger)
	updateProductUseCase := update_product.NewInteractor(backend, logger)
	setActiveUseCase := set_product_active.NewInteractor(backend, logger)
	deleteProductUseCase := delete_product.NewInteractor(backend, logger)
	uploadImageUseCase := upload_image.NewInteractor(backend, logger)
	deleteImageUseCase := delete_image.NewInteractor(backend, logger)

	// 5. Query use cases (read operations)
	getProductQuery := get_product.NewQuery(backend, fallback, logger)
	listProductsQuery := list_products.NewQuery(backend, fallback, logger)

	// 6. Auth
	authService := auth.NewService(auth.Config{
		AdminEmail:   cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
		Secret:       cfg.Admin.JWTSecret,
		TokenTTL:     cfg.Admin.TokenTTL,
	}, remote, clk, logger.Named("auth"))

	// 7. HTTP
	productHandler := product.NewHandler(
		createProductUseCase,
		updateProductUseCase,
		setActiveUseCase,
		deleteProductUseCase,
		uploadImageUseCase,
		deleteImageUseCase,
		getProductQuery,
		listProductsQuery,
		probe,
		objects,
		backend.Name(),
		logger,
	)
	adminHandler := admin.NewHandler(authService)
	server := httpserver.NewServer(cfg.Server, productHandler, adminHandler, authService, remote, logger)

	return &ServiceOptions{
		Backend:        backend,
		Auth:           authService,
		Probe:          probe,
		ProductHandler: productHandler,
		AdminHandler:   adminHandler,
		Server:         server,
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.Store != nil {
		_ = s.Store.Close()
	}
}
