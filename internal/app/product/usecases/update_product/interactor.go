package update_product

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request contains the product ID and the fields to change. Nil fields are
// left as they are.
type Request struct {
	ProductID string
	Patch     domain.UpdateProductData
}

// Interactor handles the update product use case.
type Interactor struct {
	backend contracts.ProductBackend
	logger  *zap.Logger
}

// NewInteractor creates a new update product interactor.
func NewInteractor(backend contracts.ProductBackend, logger *zap.Logger) *Interactor {
	return &Interactor{
		backend: backend,
		logger:  logger,
	}
}

// Execute applies the patch and returns the stored product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req.ProductID == "" {
		return nil, domain.NewError(domain.KindValidationFailed, domain.MsgProductIDRequired)
	}
	if err := req.Patch.Normalize().Validate(); err != nil {
		return nil, err
	}

	product, err := i.backend.Update(ctx, req.ProductID, req.Patch)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("product updated", zap.String("product_id", product.ID))
	return product, nil
}
