package list_products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/repo"
	"github.com/light-bringer/perfume-catalog/internal/testutil"
)

func product(t *testing.T, id, name string, at time.Time, active bool) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, testutil.CreateData(name), at)
	require.NoError(t, err)
	p.IsActive = active
	return p
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	gw := testutil.NewFakeGateway(clk)
	gw.Seed(
		product(t, "a", "Amber", testutil.Epoch, true),
		product(t, "b", "Breeze", testutil.Epoch.Add(time.Hour), false),
		product(t, "c", "Citrus", testutil.Epoch.Add(2*time.Hour), true),
	)
	local := repo.NewLocalBackend(testutil.NewMemoryStore(product(t, "l", "Local", testutil.Epoch, true)), clk, zap.NewNop())
	query := NewQuery(repo.NewRemoteBackend(gw, nil, nil, clk, zap.NewNop()), local, zap.NewNop())

	t.Run("active only", func(t *testing.T) {
		products, err := query.Execute(ctx, &Request{})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "c", products[0].ID)
		assert.Equal(t, "a", products[1].ID)
		for _, p := range products {
			assert.True(t, p.IsActive)
		}
	})

	t.Run("including inactive", func(t *testing.T) {
		products, err := query.Execute(ctx, &Request{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("remote failure serves the local list", func(t *testing.T) {
		gw.QueryErr = errors.New("unavailable")
		defer func() { gw.QueryErr = nil }()

		products, err := query.Execute(ctx, &Request{})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "l", products[0].ID)
	})
}

func TestListProducts_NoFallback(t *testing.T) {
	clk := testutil.NewMockClock()
	gw := testutil.NewFakeGateway(clk)
	gw.QueryErr = errors.New("unavailable")
	query := NewQuery(repo.NewRemoteBackend(gw, nil, nil, clk, zap.NewNop()), nil, zap.NewNop())

	_, err := query.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
}
