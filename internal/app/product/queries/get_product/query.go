package get_product

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID string
}

// Query handles the get product query use case.
type Query struct {
	primary  contracts.ProductBackend
	fallback contracts.ProductBackend
	logger   *zap.Logger
}

// NewQuery creates a new get product query. fallback may be nil.
func NewQuery(primary, fallback contracts.ProductBackend, logger *zap.Logger) *Query {
	return &Query{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Execute retrieves a product by ID. A missing product is reported as is;
// any other primary failure is retried against the fallback.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req.ProductID == "" {
		return nil, domain.NewError(domain.KindValidationFailed, domain.MsgProductIDRequired)
	}

	product, err := q.primary.Get(ctx, req.ProductID)
	if err == nil || errors.Is(err, domain.ErrNotFound) || q.fallback == nil {
		return product, err
	}

	q.logger.Error("failed to get product, serving local catalog",
		zap.String("product_id", req.ProductID),
		zap.String("backend", q.primary.Name()),
		zap.Error(err))
	return q.fallback.Get(ctx, req.ProductID)
}
