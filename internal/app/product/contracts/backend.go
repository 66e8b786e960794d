package contracts

import (
	"context"

	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Backend names reported by ProductBackend.Name.
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// ProductBackend is one persistence strategy for the catalog. All errors it
// returns are *domain.Error values.
type ProductBackend interface {
	Name() string

	List(ctx context.Context, includeInactive bool) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, data domain.CreateProductData) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.UpdateProductData) (*domain.Product, error)
	// Delete removes the record and returns it as it was.
	Delete(ctx context.Context, id string) (*domain.Product, error)

	// Authorize fails with an unauthenticated error when image writes need a
	// session and the caller has none.
	Authorize(ctx context.Context) error
	// StoreImage persists file for the product and returns its URL.
	StoreImage(ctx context.Context, productID string, file *domain.ImageFile) (string, error)
	// RemoveImage deletes the stored image and clears the product's image_url.
	RemoveImage(ctx context.Context, productID, imageURL string) error
	// DiscardImage deletes a stored image left behind by a deleted product.
	DiscardImage(ctx context.Context, imageURL string) error
}

// LocalStore persists the whole product list as one blob.
type LocalStore interface {
	// Load returns the stored list, seeding the demo catalog on first use.
	Load() ([]*domain.Product, error)
	Save(products []*domain.Product) error
	// Add prepends p.
	Add(p *domain.Product) error
	// Update replaces the product with p's id; absent ids are ignored.
	Update(p *domain.Product) error
	Remove(id string) error
}

// StoragePreflight verifies the object store before the first upload.
type StoragePreflight interface {
	Preflight(ctx context.Context) error
}
