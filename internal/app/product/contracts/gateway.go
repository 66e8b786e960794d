package contracts

import (
	"context"
	"errors"
	"time"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
)

// Storage errors returned by a Gateway.
var (
	ErrBucketNotFound = errors.New("Bucket not found")
	ErrObjectNotFound = errors.New("Object not found")
)

// ProductFilter narrows a product query. Zero value matches every row.
type ProductFilter struct {
	ID         string
	ActiveOnly bool
}

// ProductPatch is applied to a stored row inside the gateway's transaction.
type ProductPatch struct {
	Fields domain.UpdateProductData
	// SetImage replaces image_url with ImageURL (nil clears it).
	SetImage bool
	ImageURL *string
	At       time.Time
}

// StorageObject is a stored blob.
type StorageObject struct {
	Bucket      string
	Path        string
	ContentType string
	Data        []byte
	UpdatedAt   time.Time
}

// Gateway is the remote database and object-storage service.
// Missing product rows are reported as domain not-found errors.
type Gateway interface {
	// IsAvailable reports whether the remote service is configured.
	IsAvailable() bool

	// QueryProducts returns matching rows, newest created first.
	QueryProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// InsertProduct stores p, assigning an id when p.ID is empty, and returns the stored row.
	InsertProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)

	// UpdateProduct applies patch to row id and returns the updated row.
	UpdateProduct(ctx context.Context, id string, patch *ProductPatch) (*domain.Product, error)

	// DeleteProduct removes row id and returns it as it was.
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)

	UploadObject(ctx context.Context, obj *StorageObject, upsert bool) error
	RemoveObjects(ctx context.Context, bucket string, paths []string) error
	DownloadObject(ctx context.Context, bucket, path string) (*StorageObject, error)
	PublicURLFor(bucket, path string) string

	// CurrentSession returns the caller's session, or nil when unauthenticated.
	CurrentSession(ctx context.Context) (*auth.Session, error)
}
