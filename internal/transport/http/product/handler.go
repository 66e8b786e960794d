package product

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/healthcheck"
	"github.com/light-bringer/perfume-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/delete_image"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/set_product_active"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/perfume-catalog/internal/app/product/usecases/upload_image"
	"github.com/light-bringer/perfume-catalog/internal/transport/http/middleware"
)

// ObjectReader serves stored objects.
type ObjectReader interface {
	DownloadObject(ctx context.Context, bucket, path string) (*contracts.StorageObject, error)
}

// Handler exposes the catalog over HTTP.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	createProduct *create_product.Interactor
	updateProduct *update_product.Interactor
	setActive     *set_product_active.Interactor
	deleteProduct *delete_product.Interactor
	uploadImage   *upload_image.Interactor
	deleteImage   *delete_image.Interactor

	// Queries
	getProduct   *get_product.Query
	listProducts *list_products.Query

	probe   *healthcheck.Probe
	objects ObjectReader
	backend string
	logger  *zap.Logger
}

// NewHandler creates a new HTTP product handler. objects may be nil when no
// remote object store is configured.
func NewHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	setActive *set_product_active.Interactor,
	deleteProduct *delete_product.Interactor,
	uploadImage *upload_image.Interactor,
	deleteImage *delete_image.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
	probe *healthcheck.Probe,
	objects ObjectReader,
	backend string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		createProduct: createProduct,
		updateProduct: updateProduct,
		setActive:     setActive,
		deleteProduct: deleteProduct,
		uploadImage:   uploadImage,
		deleteImage:   deleteImage,
		getProduct:    getProduct,
		listProducts:  listProducts,
		probe:         probe,
		objects:       objects,
		backend:       backend,
		logger:        logger,
	}
}

// Register mounts the catalog routes. admin guards the write routes.
func (h *Handler) Register(api *echo.Group, admin echo.MiddlewareFunc) {
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/products", h.CreateProduct, admin)
	api.PATCH("/products/:id", h.UpdateProduct, admin)
	api.DELETE("/products/:id", h.DeleteProduct, admin)
	api.POST("/products/:id/activate", h.ActivateProduct, admin)
	api.POST("/products/:id/deactivate", h.DeactivateProduct, admin)
	api.POST("/products/:id/image", h.UploadImage, admin)
	api.DELETE("/products/:id/image", h.DeleteImage, admin)
	api.GET("/storage/health", h.StorageHealth, admin)
	api.GET("/status", h.Status)
}

// RegisterObjects mounts the public object route.
func (h *Handler) RegisterObjects(e *echo.Echo) {
	e.GET("/storage/v1/object/public/:bucket/*", h.DownloadObject)
}

// ListProducts handles GET /products. Inactive products are admin only.
func (h *Handler) ListProducts(c echo.Context) error {
	var req listProductsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.IncludeInactive && !middleware.IsAdmin(c) {
		return domain.NewError(domain.KindUnauthenticated, domain.MsgAuthRequired)
	}

	products, err := h.listProducts.Execute(c.Request().Context(), &list_products.Request{
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(products))
}

// GetProduct handles GET /products/:id.
func (h *Handler) GetProduct(c echo.Context) error {
	product, err := h.getProduct.Execute(c.Request().Context(), &get_product.Request{
		ProductID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.createProduct.Execute(c.Request().Context(), &create_product.Request{
		Data: req.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PATCH /products/:id.
func (h *Handler) UpdateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.updateProduct.Execute(c.Request().Context(), &update_product.Request{
		ProductID: c.Param("id"),
		Patch:     req.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id.
func (h *Handler) DeleteProduct(c echo.Context) error {
	err := h.deleteProduct.Execute(c.Request().Context(), &delete_product.Request{
		ProductID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ActivateProduct handles POST /products/:id/activate.
func (h *Handler) ActivateProduct(c echo.Context) error {
	return h.setProductActive(c, true)
}

// DeactivateProduct handles POST /products/:id/deactivate.
func (h *Handler) DeactivateProduct(c echo.Context) error {
	return h.setProductActive(c, false)
}

func (h *Handler) setProductActive(c echo.Context, active bool) error {
	product, err := h.setActive.Execute(c.Request().Context(), &set_product_active.Request{
		ProductID: c.Param("id"),
		Active:    active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// UploadImage handles POST /products/:id/image with a multipart "file" part.
func (h *Handler) UploadImage(c echo.Context) error {
	file, err := readImageFile(c)
	if err != nil {
		return err
	}

	url, err := h.uploadImage.Execute(c.Request().Context(), &upload_image.Request{
		ProductID: c.Param("id"),
		File:      file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &imageResponse{ImageURL: url})
}

// DeleteImage handles DELETE /products/:id/image?url=.
func (h *Handler) DeleteImage(c echo.Context) error {
	var req deleteImageRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.deleteImage.Execute(c.Request().Context(), &delete_image.Request{
		ProductID: c.Param("id"),
		ImageURL:  req.URL,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// StorageHealth handles GET /storage/health.
func (h *Handler) StorageHealth(c echo.Context) error {
	result := h.probe.CheckSetup(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"result":       result,
		"instructions": h.probe.SetupInstructions(),
	})
}

// Status handles GET /status.
func (h *Handler) Status(c echo.Context) error {
	resp := &statusResponse{Backend: h.backend}
	if h.backend == contracts.BackendRemote {
		resp.RemoteConfigured = true
		resp.Persistent = true
		resp.Message = "Changes are permanently saved in the remote database"
	} else {
		resp.Message = "Changes saved locally only. Configure SPANNER_DATABASE and STORAGE_PUBLIC_BASE_URL for permanent storage."
	}
	return c.JSON(http.StatusOK, resp)
}

// DownloadObject serves a public object.
func (h *Handler) DownloadObject(c echo.Context) error {
	if h.objects == nil {
		return echo.NewHTTPError(http.StatusNotFound, contracts.ErrObjectNotFound.Error())
	}

	obj, err := h.objects.DownloadObject(c.Request().Context(), c.Param("bucket"), c.Param("*"))
	switch {
	case errors.Is(err, contracts.ErrObjectNotFound), errors.Is(err, contracts.ErrBucketNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case err != nil:
		return domain.Wrap(domain.KindPersistenceFailed, err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}

// readImageFile reads the "file" part. A missing part yields a nil file so
// the use case reports it; oversized parts are not read into memory.
func readImageFile(c echo.Context) (*domain.ImageFile, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}

	file := &domain.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
	}
	if fh.Size <= 0 || fh.Size > domain.MaxImageBytes {
		return file, nil
	}

	data, err := readPart(fh)
	if err != nil {
		return nil, domain.Wrap(domain.KindInvalidFile, err)
	}
	file.Data = data
	return file, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, domain.MaxImageBytes+1))
}
