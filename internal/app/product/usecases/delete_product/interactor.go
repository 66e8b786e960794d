package delete_product

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request contains the product ID to delete.
type Request struct {
	ProductID string
}

// Interactor handles the delete product use case.
type Interactor struct {
	backend contracts.ProductBackend
	logger  *zap.Logger
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(backend contracts.ProductBackend, logger *zap.Logger) *Interactor {
	return &Interactor{
		backend: backend,
		logger:  logger,
	}
}

// Execute removes the record, then its stored image. Image cleanup is best
// effort: a failure is logged and the delete still succeeds.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.ProductID == "" {
		return domain.NewError(domain.KindValidationFailed, domain.MsgProductIDRequired)
	}

	deleted, err := i.backend.Delete(ctx, req.ProductID)
	if err != nil {
		return err
	}

	if deleted.HasImage() {
		if err := i.backend.DiscardImage(ctx, *deleted.ImageURL); err != nil {
			i.logger.Warn("failed to delete image of removed product",
				zap.String("product_id", deleted.ID),
				zap.String("image_url", *deleted.ImageURL),
				zap.Error(err))
		}
	}

	i.logger.Info("product deleted", zap.String("product_id", deleted.ID))
	return nil
}
