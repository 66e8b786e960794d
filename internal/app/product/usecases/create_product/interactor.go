package create_product

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request contains the data needed to create a product.
type Request struct {
	Data domain.CreateProductData
}

// Interactor handles the create product use case.
type Interactor struct {
	backend contracts.ProductBackend
	logger  *zap.Logger
}

// NewInteractor creates a new create product interactor.
func NewInteractor(backend contracts.ProductBackend, logger *zap.Logger) *Interactor {
	return &Interactor{
		backend: backend,
		logger:  logger,
	}
}

// Execute creates a product. It starts active and without an image; the
// backend assigns the id and both timestamps.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if err := req.Data.Normalize().Validate(); err != nil {
		return nil, err
	}

	product, err := i.backend.Create(ctx, req.Data)
	if err != nil {
		return nil, err
	}

	i.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("backend", i.backend.Name()))
	return product, nil
}
