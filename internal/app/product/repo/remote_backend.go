package repo

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// RemoteBackend stores the catalog through a Gateway. Images are uploaded to
// the gateway's object store and referenced by public URL.
type RemoteBackend struct {
	gateway   contracts.Gateway
	codec     *imagepath.Codec
	preflight contracts.StoragePreflight
	clock     clock.Clock
	logger    *zap.Logger
}

var _ contracts.ProductBackend = (*RemoteBackend)(nil)

// NewRemoteBackend creates a RemoteBackend. preflight may be nil.
func NewRemoteBackend(
	gateway contracts.Gateway,
	codec *imagepath.Codec,
	preflight contracts.StoragePreflight,
	clk clock.Clock,
	logger *zap.Logger,
) *RemoteBackend {
	return &RemoteBackend{
		gateway:   gateway,
		codec:     codec,
		preflight: preflight,
		clock:     clk,
		logger:    logger,
	}
}

func (b *RemoteBackend) Name() string { return contracts.BackendRemote }

func (b *RemoteBackend) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	if err := b.available(); err != nil {
		return nil, err
	}
	products, err := b.gateway.QueryProducts(ctx, contracts.ProductFilter{ActiveOnly: !includeInactive})
	if err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return products, nil
}

func (b *RemoteBackend) Get(ctx context.Context, id string) (*domain.Product, error) {
	if err := b.available(); err != nil {
		return nil, err
	}
	products, err := b.gateway.QueryProducts(ctx, contracts.ProductFilter{ID: id})
	if err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	if len(products) == 0 {
		return nil, domain.NotFound()
	}
	return products[0], nil
}

// Create inserts the product; the gateway assigns its id.
func (b *RemoteBackend) Create(ctx context.Context, data domain.CreateProductData) (*domain.Product, error) {
	if err := b.available(); err != nil {
		return nil, err
	}
	p, err := domain.NewProduct("", data, b.clock.Now())
	if err != nil {
		return nil, err
	}
	stored, err := b.gateway.InsertProduct(ctx, p)
	if err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return stored, nil
}

func (b *RemoteBackend) Update(ctx context.Context, id string, patch domain.UpdateProductData) (*domain.Product, error) {
	if err := b.available(); err != nil {
		return nil, err
	}
	p, err := b.gateway.UpdateProduct(ctx, id, &contracts.ProductPatch{Fields: patch, At: b.clock.Now()})
	if err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return p, nil
}

func (b *RemoteBackend) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if err := b.available(); err != nil {
		return nil, err
	}
	p, err := b.gateway.DeleteProduct(ctx, id)
	if err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return p, nil
}

// Authorize requires an authenticated session for image writes.
func (b *RemoteBackend) Authorize(ctx context.Context) error {
	if err := b.available(); err != nil {
		return err
	}
	session, err := b.gateway.CurrentSession(ctx)
	if err != nil {
		return domain.Wrap(domain.KindPersistenceFailed, err)
	}
	if session == nil {
		return domain.NewError(domain.KindUnauthenticated, domain.MsgAuthRequired)
	}
	return nil
}

// StoreImage uploads the file and points the product at its public URL.
// A failed record update leaves the uploaded object behind.
func (b *RemoteBackend) StoreImage(ctx context.Context, productID string, file *domain.ImageFile) (string, error) {
	if err := b.available(); err != nil {
		return "", err
	}
	if b.preflight != nil {
		if err := b.preflight.Preflight(ctx); err != nil {
			return "", domain.Wrap(domain.KindPersistenceFailed, err)
		}
	}

	objectPath := b.codec.DeriveUploadPath(productID, file.Name)
	err := b.gateway.UploadObject(ctx, &contracts.StorageObject{
		Bucket:      b.codec.Bucket(),
		Path:        objectPath,
		ContentType: file.ContentType,
		Data:        file.Data,
	}, true)
	if err != nil {
		return "", domain.Wrap(domain.KindPersistenceFailed, err)
	}

	url := b.gateway.PublicURLFor(b.codec.Bucket(), objectPath)
	_, err = b.gateway.UpdateProduct(ctx, productID, &contracts.ProductPatch{
		SetImage: true,
		ImageURL: &url,
		At:       b.clock.Now(),
	})
	if err != nil {
		b.logger.Warn("image uploaded but product update failed; object left orphaned",
			zap.String("product_id", productID),
			zap.String("bucket", b.codec.Bucket()),
			zap.String("path", objectPath),
			zap.Error(err))
		return "", domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return url, nil
}

// RemoveImage deletes the object behind imageURL and clears the product's
// image. A product that no longer exists is not an error.
func (b *RemoteBackend) RemoveImage(ctx context.Context, productID, imageURL string) error {
	if err := b.available(); err != nil {
		return err
	}
	objectPath := b.codec.ExtractPath(imageURL)
	if objectPath == "" {
		return domain.NewError(domain.KindUnparsableURL, domain.MsgUnparsableImageURL)
	}

	if err := b.gateway.RemoveObjects(ctx, b.codec.Bucket(), []string{objectPath}); err != nil {
		return domain.Wrap(domain.KindPersistenceFailed, err)
	}

	_, err := b.gateway.UpdateProduct(ctx, productID, &contracts.ProductPatch{
		SetImage: true,
		At:       b.clock.Now(),
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return nil
}

// DiscardImage deletes the object behind imageURL. URLs outside the bucket
// have nothing to clean up.
func (b *RemoteBackend) DiscardImage(ctx context.Context, imageURL string) error {
	objectPath := b.codec.ExtractPath(imageURL)
	if objectPath == "" {
		b.logger.Warn("could not parse storage path from image url", zap.String("image_url", imageURL))
		return nil
	}
	if err := b.gateway.RemoveObjects(ctx, b.codec.Bucket(), []string{objectPath}); err != nil {
		return domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return nil
}

func (b *RemoteBackend) available() error {
	if !b.gateway.IsAvailable() {
		return domain.NewError(domain.KindBackendUnavailable, "remote backend is not available")
	}
	return nil
}
