package list_products

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request contains the listing filter.
type Request struct {
	IncludeInactive bool
}

// Query handles the list products query use case.
type Query struct {
	primary  contracts.ProductBackend
	fallback contracts.ProductBackend
	logger   *zap.Logger
}

// NewQuery creates a new list products query. fallback may be nil; when set,
// a failed primary read is served from it instead.
func NewQuery(primary, fallback contracts.ProductBackend, logger *zap.Logger) *Query {
	return &Query{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Execute returns products newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Product, error) {
	products, err := q.primary.List(ctx, req.IncludeInactive)
	if err == nil {
		return products, nil
	}
	if q.fallback == nil {
		return nil, err
	}

	q.logger.Error("failed to list products, serving local catalog",
		zap.String("backend", q.primary.Name()),
		zap.Error(err))
	return q.fallback.List(ctx, req.IncludeInactive)
}
