package set_product_active

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request contains the product ID and the desired visibility.
type Request struct {
	ProductID string
	Active    bool
}

// Interactor shows or hides a product in the public catalog.
type Interactor struct {
	backend contracts.ProductBackend
	logger  *zap.Logger
}

// NewInteractor creates a new set product active interactor.
func NewInteractor(backend contracts.ProductBackend, logger *zap.Logger) *Interactor {
	return &Interactor{
		backend: backend,
		logger:  logger,
	}
}

// Execute flips is_active. Setting the current value still refreshes
// updated_at.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req.ProductID == "" {
		return nil, domain.NewError(domain.KindValidationFailed, domain.MsgProductIDRequired)
	}

	active := req.Active
	product, err := i.backend.Update(ctx, req.ProductID, domain.UpdateProductData{IsActive: &active})
	if err != nil {
		return nil, err
	}

	i.logger.Info("product visibility changed",
		zap.String("product_id", product.ID),
		zap.Bool("is_active", product.IsActive))
	return product, nil
}
