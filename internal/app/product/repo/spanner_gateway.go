package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/perfume-catalog/internal/app/auth"
	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/models/m_object"
	"github.com/light-bringer/perfume-catalog/internal/models/m_product"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
	"github.com/light-bringer/perfume-catalog/internal/pkg/committer"
	"github.com/light-bringer/perfume-catalog/internal/pkg/query"
)

// rowReader is satisfied by both read-only and read-write transactions.
type rowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// SpannerGateway implements contracts.Gateway on Cloud Spanner. Product rows
// live in the products table and image bytes in storage_objects.
type SpannerGateway struct {
	client        *spanner.Client
	committer     *committer.Committer
	products      *m_product.Model
	objects       *m_object.Model
	publicBaseURL string
	available     bool
	clock         clock.Clock
}

// NewSpannerGateway creates a gateway. available is the configuration
// validity check computed at startup.
func NewSpannerGateway(client *spanner.Client, publicBaseURL string, available bool, clk clock.Clock) *SpannerGateway {
	return &SpannerGateway{
		client:        client,
		committer:     committer.NewCommitter(client),
		products:      m_product.NewModel(),
		objects:       m_object.NewModel(),
		publicBaseURL: publicBaseURL,
		available:     available,
		clock:         clk,
	}
}

var _ contracts.Gateway = (*SpannerGateway)(nil)

func (g *SpannerGateway) IsAvailable() bool {
	return g.available && g.client != nil
}

// QueryProducts returns matching products ordered by created_at descending.
func (g *SpannerGateway) QueryProducts(ctx context.Context, filter contracts.ProductFilter) ([]*domain.Product, error) {
	b := query.From(m_product.TableName).Select(m_product.Columns()...)
	if filter.ID != "" {
		b = b.Where(query.Eq(m_product.ID, filter.ID))
	}
	if filter.ActiveOnly {
		b = b.Where(query.Eq(m_product.IsActive, true))
	}
	stmt := b.OrderBy(m_product.CreatedAt, query.Desc).OrderBy(m_product.ID, query.Asc).Build()

	iter := g.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		products = append(products, dataToDomain(&data))
	}

	return products, nil
}

// InsertProduct stores p, assigning a UUID when it has no id.
func (g *SpannerGateway) InsertProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	stored := p.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	plan := committer.NewPlan()
	plan.Add(g.products.InsertMut(domainToData(stored)))
	if err := g.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return stored, nil
}

// UpdateProduct applies patch inside a read-write transaction so the
// not-found check and the write see the same row.
func (g *SpannerGateway) UpdateProduct(ctx context.Context, id string, patch *contracts.ProductPatch) (*domain.Product, error) {
	var updated *domain.Product
	err := g.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		p, err := readProduct(ctx, txn, id)
		if err != nil {
			return err
		}

		if err := p.Apply(patch.Fields, patch.At); err != nil {
			return err
		}
		if patch.SetImage {
			p.SetImageURL(patch.ImageURL, patch.At)
		}

		plan := committer.NewPlan()
		plan.Add(g.products.UpdateMut(p.ID, updateColumns(p)))
		if err := committer.Buffer(txn, plan); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes the row and returns it as it was.
func (g *SpannerGateway) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	var deleted *domain.Product
	err := g.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		p, err := readProduct(ctx, txn, id)
		if err != nil {
			return err
		}

		plan := committer.NewPlan()
		plan.Add(g.products.DeleteMut(id))
		if err := committer.Buffer(txn, plan); err != nil {
			return err
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// UploadObject stores obj in its bucket. Without upsert an existing object
// at the same path is an error.
func (g *SpannerGateway) UploadObject(ctx context.Context, obj *contracts.StorageObject, upsert bool) error {
	now := g.clock.Now()
	data := &m_object.Data{
		Bucket:      obj.Bucket,
		Path:        obj.Path,
		ContentType: obj.ContentType,
		Size:        int64(len(obj.Data)),
		Content:     obj.Data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := g.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if _, err := txn.ReadRow(ctx, m_object.BucketsTable, spanner.Key{obj.Bucket}, []string{m_object.BucketName}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return contracts.ErrBucketNotFound
			}
			return fmt.Errorf("failed to read bucket: %w", err)
		}

		plan := committer.NewPlan()
		if upsert {
			plan.Add(g.objects.UpsertMut(data))
		} else {
			plan.Add(g.objects.InsertMut(data))
		}
		return committer.Buffer(txn, plan)
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return fmt.Errorf("The resource already exists: %w", err)
		}
		return err
	}
	return nil
}

// RemoveObjects deletes the given paths. Missing objects are ignored.
func (g *SpannerGateway) RemoveObjects(ctx context.Context, bucket string, paths []string) error {
	plan := committer.NewPlan()
	for _, p := range paths {
		plan.Add(g.objects.DeleteMut(bucket, p))
	}
	if err := g.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to remove objects: %w", err)
	}
	return nil
}

// DownloadObject reads a stored object.
func (g *SpannerGateway) DownloadObject(ctx context.Context, bucket, path string) (*contracts.StorageObject, error) {
	row, err := g.client.Single().ReadRow(ctx, m_object.ObjectsTable, spanner.Key{bucket, path}, m_object.ObjectColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, contracts.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	var data m_object.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse object: %w", err)
	}
	return &contracts.StorageObject{
		Bucket:      data.Bucket,
		Path:        data.Path,
		ContentType: data.ContentType,
		Data:        data.Content,
		UpdatedAt:   data.UpdatedAt,
	}, nil
}

func (g *SpannerGateway) PublicURLFor(bucket, path string) string {
	return imagepath.PublicURL(g.publicBaseURL, bucket, path)
}

// CurrentSession reads the admin session placed on ctx by the transport.
func (g *SpannerGateway) CurrentSession(ctx context.Context) (*auth.Session, error) {
	s, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, nil
	}
	return s, nil
}

// EnsureBucket registers a bucket, creating it if needed.
func (g *SpannerGateway) EnsureBucket(ctx context.Context, name string, public bool) error {
	plan := committer.NewPlan()
	plan.Add(g.objects.BucketUpsertMut(&m_object.BucketData{
		Name:      name,
		Public:    public,
		CreatedAt: g.clock.Now(),
	}))
	if err := g.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to ensure bucket %s: %w", name, err)
	}
	return nil
}

// orphanObjectsSQL selects objects under a prefix that no product image_url
// points at. References match on the public marker plus path, whatever origin
// the URL was issued under. The age cutoff keeps uploads whose product update
// is in flight.
const orphanObjectsSQL = `
	SELECT o.path
	FROM storage_objects o
	WHERE o.bucket = @bucket
	  AND STARTS_WITH(o.path, @prefix)
	  AND o.updated_at < @cutoff
	  AND NOT EXISTS (
	    SELECT 1 FROM products p
	    WHERE p.image_url IS NOT NULL
	      AND STRPOS(p.image_url, CONCAT(@marker, o.path)) > 0
	  )
	ORDER BY o.path
`

// FindOrphanObjects lists object paths under prefix, last written before
// cutoff, that no product references. The configured public base URL plays
// no part in the match.
func (g *SpannerGateway) FindOrphanObjects(ctx context.Context, bucket, prefix string, cutoff time.Time) ([]string, error) {
	stmt := spanner.Statement{
		SQL: orphanObjectsSQL,
		Params: map[string]interface{}{
			"bucket": bucket,
			"prefix": prefix,
			"cutoff": cutoff,
			"marker": imagepath.PublicPrefix + bucket + "/",
		},
	}

	iter := g.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	paths := make([]string, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query orphan objects: %w", err)
		}

		var path string
		if err := row.Columns(&path); err != nil {
			return nil, fmt.Errorf("failed to parse object path: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func readProduct(ctx context.Context, r rowReader, id string) (*domain.Product, error) {
	row, err := r.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NotFound()
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return dataToDomain(&data), nil
}

// updateColumns returns the dirty columns of p plus updated_at.
func updateColumns(p *domain.Product) map[string]interface{} {
	changes := p.Changes()
	updates := map[string]interface{}{
		m_product.UpdatedAt: p.UpdatedAt,
	}

	if changes.Dirty(domain.FieldNameEN) {
		updates[m_product.NameEN] = p.NameEN
	}
	if changes.Dirty(domain.FieldNameAR) {
		updates[m_product.NameAR] = p.NameAR
	}
	if changes.Dirty(domain.FieldDescriptionEN) {
		updates[m_product.DescriptionEN] = p.DescriptionEN
	}
	if changes.Dirty(domain.FieldDescriptionAR) {
		updates[m_product.DescriptionAR] = p.DescriptionAR
	}
	if changes.Dirty(domain.FieldPrice) {
		updates[m_product.Price] = *p.Price.Rat()
	}
	if changes.Dirty(domain.FieldImageURL) {
		updates[m_product.ImageURL] = nullString(p.ImageURL)
	}
	if changes.Dirty(domain.FieldIsActive) {
		updates[m_product.IsActive] = p.IsActive
	}

	return updates
}

func domainToData(p *domain.Product) *m_product.Data {
	return &m_product.Data{
		ID:            p.ID,
		NameEN:        p.NameEN,
		NameAR:        p.NameAR,
		DescriptionEN: p.DescriptionEN,
		DescriptionAR: p.DescriptionAR,
		Price:         *p.Price.Rat(),
		ImageURL:      nullString(p.ImageURL),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func dataToDomain(data *m_product.Data) *domain.Product {
	p := &domain.Product{
		ID:            data.ID,
		NameEN:        data.NameEN,
		NameAR:        data.NameAR,
		DescriptionEN: data.DescriptionEN,
		DescriptionAR: data.DescriptionAR,
		Price:         domain.NewMoneyFromRat(&data.Price),
		IsActive:      data.IsActive,
		CreatedAt:     data.CreatedAt.UTC(),
		UpdatedAt:     data.UpdatedAt.UTC(),
	}
	if data.ImageURL.Valid {
		url := data.ImageURL.StringVal
		p.ImageURL = &url
	}
	return p
}

func nullString(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}
