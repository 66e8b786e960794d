package upload_image

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Request carries the file and the product it belongs to.
type Request struct {
	ProductID string
	File      *domain.ImageFile
}

// Interactor handles the upload product image use case.
type Interactor struct {
	backend contracts.ProductBackend
	logger  *zap.Logger
}

// NewInteractor creates a new upload image interactor.
func NewInteractor(backend contracts.ProductBackend, logger *zap.Logger) *Interactor {
	return &Interactor{
		backend: backend,
		logger:  logger,
	}
}

// Execute stores the image and returns its URL. The caller's session and the
// file are checked before anything is written.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	if err := i.backend.Authorize(ctx); err != nil {
		return "", err
	}
	if err := domain.ValidateImageFile(req.File); err != nil {
		return "", err
	}
	if req.ProductID == "" {
		return "", domain.NewError(domain.KindValidationFailed, domain.MsgProductIDRequired)
	}

	url, err := i.backend.StoreImage(ctx, req.ProductID, req.File)
	if err != nil {
		return "", err
	}

	i.logger.Info("product image uploaded",
		zap.String("product_id", req.ProductID),
		zap.Int64("size", req.File.Size))
	return url, nil
}
