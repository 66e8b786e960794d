package repo

import (
	"context"
	"encoding/base64"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// LocalBackend keeps the catalog in a LocalStore. Images are embedded in the
// record as data URIs, so nothing outside the record needs cleaning up.
type LocalBackend struct {
	store  contracts.LocalStore
	clock  clock.Clock
	logger *zap.Logger
}

var _ contracts.ProductBackend = (*LocalBackend)(nil)

// NewLocalBackend creates a LocalBackend.
func NewLocalBackend(store contracts.LocalStore, clk clock.Clock, logger *zap.Logger) *LocalBackend {
	return &LocalBackend{store: store, clock: clk, logger: logger}
}

func (b *LocalBackend) Name() string { return contracts.BackendLocal }

// List returns products newest first, optionally including inactive ones.
func (b *LocalBackend) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	products, err := b.load()
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if includeInactive || p.IsActive {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (b *LocalBackend) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := b.load()
	if err != nil {
		return nil, err
	}
	return find(products, id)
}

// Create stores a new product under a client-side UUID.
func (b *LocalBackend) Create(ctx context.Context, data domain.CreateProductData) (*domain.Product, error) {
	p, err := domain.NewProduct(uuid.NewString(), data, b.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := b.store.Add(p); err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return p, nil
}

func (b *LocalBackend) Update(ctx context.Context, id string, patch domain.UpdateProductData) (*domain.Product, error) {
	p, err := b.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := p.Clone()
	if err := updated.Apply(patch, b.clock.Now()); err != nil {
		return nil, err
	}
	if err := b.store.Update(updated); err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return updated, nil
}

func (b *LocalBackend) Delete(ctx context.Context, id string) (*domain.Product, error) {
	p, err := b.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.store.Remove(id); err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return p, nil
}

// Authorize always succeeds; the local catalog has no sessions.
func (b *LocalBackend) Authorize(ctx context.Context) error {
	return nil
}

// StoreImage embeds the file in the record as a data URI.
func (b *LocalBackend) StoreImage(ctx context.Context, productID string, file *domain.ImageFile) (string, error) {
	p, err := b.Get(ctx, productID)
	if err != nil {
		return "", err
	}

	url := "data:" + file.ContentType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
	updated := p.Clone()
	updated.SetImageURL(&url, b.clock.Now())
	if err := b.store.Update(updated); err != nil {
		return "", domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return url, nil
}

// RemoveImage clears the product's image. A missing product is not an error.
func (b *LocalBackend) RemoveImage(ctx context.Context, productID, imageURL string) error {
	products, err := b.load()
	if err != nil {
		return err
	}
	p, err := find(products, productID)
	if err != nil {
		return nil
	}

	updated := p.Clone()
	updated.SetImageURL(nil, b.clock.Now())
	if err := b.store.Update(updated); err != nil {
		return domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return nil
}

// DiscardImage is a no-op: local images live inside the deleted record.
func (b *LocalBackend) DiscardImage(ctx context.Context, imageURL string) error {
	return nil
}

func (b *LocalBackend) load() ([]*domain.Product, error) {
	products, err := b.store.Load()
	if err != nil {
		return nil, domain.Wrap(domain.KindPersistenceFailed, err)
	}
	return products, nil
}

func find(products []*domain.Product, id string) (*domain.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.NotFound()
}
