package repo

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/contracts"
	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

const (
	localBucket = "catalog"
	// LocalStoreKey holds the whole product list.
	LocalStoreKey = "tahaperfume_mock_products"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BoltStore implements contracts.LocalStore as one JSON blob in a bbolt file.
// Every call is a single bolt transaction; concurrent writers are serialised
// by bolt and the last one wins.
type BoltStore struct {
	db     *bolt.DB
	clock  clock.Clock
	logger *zap.Logger
}

var _ contracts.LocalStore = (*BoltStore)(nil)

// OpenBoltStore opens or creates the store file at path.
func OpenBoltStore(path string, clk clock.Clock, logger *zap.Logger) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(localBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create local store bucket: %w", err)
	}

	return &BoltStore{db: db, clock: clk, logger: logger}, nil
}

// Close releases the store file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load returns the stored list. The demo catalog is written on first use.
func (s *BoltStore) Load() ([]*domain.Product, error) {
	var products []*domain.Product
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(localBucket))
		raw := b.Get([]byte(LocalStoreKey))
		if raw == nil {
			products = domain.DemoCatalog(s.clock.Now())
			s.logger.Info("seeding local catalog", zap.Int("products", len(products)))
			return put(b, products)
		}

		var err error
		products, err = decode(raw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Save replaces the stored list.
func (s *BoltStore) Save(products []*domain.Product) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket([]byte(localBucket)), products)
	})
}

// Add prepends p.
func (s *BoltStore) Add(p *domain.Product) error {
	return s.modify(func(products []*domain.Product) []*domain.Product {
		return append([]*domain.Product{p}, products...)
	})
}

// Update replaces the product with p's id. Unknown ids are ignored.
func (s *BoltStore) Update(p *domain.Product) error {
	return s.modify(func(products []*domain.Product) []*domain.Product {
		for i := range products {
			if products[i].ID == p.ID {
				products[i] = p
			}
		}
		return products
	})
}

// Remove deletes the product with id.
func (s *BoltStore) Remove(id string) error {
	return s.modify(func(products []*domain.Product) []*domain.Product {
		kept := products[:0]
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		return kept
	})
}

func (s *BoltStore) modify(fn func([]*domain.Product) []*domain.Product) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(localBucket))
		var products []*domain.Product
		if raw := b.Get([]byte(LocalStoreKey)); raw != nil {
			var err error
			if products, err = decode(raw); err != nil {
				return err
			}
		} else {
			products = domain.DemoCatalog(s.clock.Now())
		}
		return put(b, fn(products))
	})
}

func put(b *bolt.Bucket, products []*domain.Product) error {
	if products == nil {
		products = []*domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	return b.Put([]byte(LocalStoreKey), raw)
}

func decode(raw []byte) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
