package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// PublicBaseURL is the base URL FakeGateway issues public URLs under.
const PublicBaseURL = "https://catalog.test"

// FakeGateway is an in-memory contracts.Gateway. Set the *Err fields to make
// the matching operation fail.
type FakeGateway struct {
	mu sync.Mutex

	Available bool
	clock     clock.Clock
	products  map[string]*domain.Product
	buckets   map[string]bool
	objects   map[string]*contracts.StorageObject
	calls     map[string]int

	QueryErr   error
	InsertErr  error
	UpdateErr  error
	DeleteErr  error
	UploadErr  error
	RemoveErr  error
	SessionErr error
}

var _ contracts.Gateway = (*FakeGateway)(nil)

// NewFakeGateway returns an available gateway with the default bucket.
func NewFakeGateway(clk clock.Clock) *FakeGateway {
	return &FakeGateway{
		Available: true,
		clock:     clk,
		products:  make(map[string]*domain.Product),
		buckets:   map[string]bool{imagepath.DefaultBucket: true},
		objects:   make(map[string]*contracts.StorageObject),
		calls:     make(map[string]int),
	}
}

// Calls returns how often op was invoked.
func (g *FakeGateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

// TotalCalls returns the number of data and storage operations invoked.
func (g *FakeGateway) TotalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

// DropBucket removes a bucket so uploads into it fail.
func (g *FakeGateway) DropBucket(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.buckets, name)
}

// HasObject reports whether an object is stored.
func (g *FakeGateway) HasObject(bucket, path string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.objects[bucket+"/"+path]
	return ok
}

// ObjectCount returns the number of stored objects.
func (g *FakeGateway) ObjectCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.objects)
}

// Seed stores products as-is.
func (g *FakeGateway) Seed(products ...*domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range products {
		g.products[p.ID] = p.Clone()
	}
}

func (g *FakeGateway) IsAvailable() bool {
	return g.Available
}

func (g *FakeGateway) QueryProducts(ctx context.Context, filter contracts.ProductFilter) ([]*domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["query"]++
	if g.QueryErr != nil {
		return nil, g.QueryErr
	}

	out := make([]*domain.Product, 0, len(g.products))
	for _, p := range g.products {
		if filter.ID != "" && p.ID != filter.ID {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (g *FakeGateway) InsertProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["insert"]++
	if g.InsertErr != nil {
		return nil, g.InsertErr
	}

	stored := p.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	g.products[stored.ID] = stored
	return stored.Clone(), nil
}

func (g *FakeGateway) UpdateProduct(ctx context.Context, id string, patch *contracts.ProductPatch) (*domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["update"]++
	if g.UpdateErr != nil {
		return nil, g.UpdateErr
	}

	current, ok := g.products[id]
	if !ok {
		return nil, domain.NotFound()
	}
	p := current.Clone()
	if err := p.Apply(patch.Fields, patch.At); err != nil {
		return nil, err
	}
	if patch.SetImage {
		p.SetImageURL(patch.ImageURL, patch.At)
	}
	g.products[id] = p
	return p.Clone(), nil
}

func (g *FakeGateway) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["delete"]++
	if g.DeleteErr != nil {
		return nil, g.DeleteErr
	}

	p, ok := g.products[id]
	if !ok {
		return nil, domain.NotFound()
	}
	delete(g.products, id)
	return p, nil
}

func (g *FakeGateway) UploadObject(ctx context.Context, obj *contracts.StorageObject, upsert bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["upload"]++
	if g.UploadErr != nil {
		return g.UploadErr
	}
	if !g.buckets[obj.Bucket] {
		return contracts.ErrBucketNotFound
	}

	key := obj.Bucket + "/" + obj.Path
	if _, exists := g.objects[key]; exists && !upsert {
		return errAlreadyExists
	}
	stored := *obj
	stored.Data = append([]byte(nil), obj.Data...)
	stored.UpdatedAt = g.clock.Now()
	g.objects[key] = &stored
	return nil
}

func (g *FakeGateway) RemoveObjects(ctx context.Context, bucket string, paths []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["remove"]++
	if g.RemoveErr != nil {
		return g.RemoveErr
	}
	for _, p := range paths {
		delete(g.objects, bucket+"/"+p)
	}
	return nil
}

func (g *FakeGateway) DownloadObject(ctx context.Context, bucket, path string) (*contracts.StorageObject, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["download"]++
	obj, ok := g.objects[bucket+"/"+path]
	if !ok {
		return nil, contracts.ErrObjectNotFound
	}
	c := *obj
	return &c, nil
}

func (g *FakeGateway) PublicURLFor(bucket, path string) string {
	return imagepath.PublicURL(PublicBaseURL, bucket, path)
}

func (g *FakeGateway) CurrentSession(ctx context.Context) (*auth.Session, error) {
	if g.SessionErr != nil {
		return nil, g.SessionErr
	}
	s, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return s, nil
}

type gatewayError string

func (e gatewayError) Error() string { return string(e) }

const errAlreadyExists = gatewayError("The resource already exists")

// AdminContext returns a context carrying an admin session.
func AdminContext() context.Context {
	return auth.WithSession(context.Background(), &auth.Session{Email: auth.DefaultAdminEmail})
}
