package delete_image

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request names the image to delete and the product that references it.
type Request struct {
	ProductID string
	ImageURL  string
}

// Interactor handles the delete product image use case.
type Interactor struct {
	backend contracts.ProductBackend
	logger  *zap.Logger
}

// NewInteractor creates a new delete image interactor.
func NewInteractor(backend contracts.ProductBackend, logger *zap.Logger) *Interactor {
	return &Interactor{
		backend: backend,
		logger:  logger,
	}
}

// Execute removes the stored object and clears the product's image_url.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.ProductID == "" {
		return domain.NewError(domain.KindValidationFailed, domain.MsgProductIDRequired)
	}

	if err := i.backend.RemoveImage(ctx, req.ProductID, req.ImageURL); err != nil {
		return err
	}

	i.logger.Info("product image deleted", zap.String("product_id", req.ProductID))
	return nil
}
