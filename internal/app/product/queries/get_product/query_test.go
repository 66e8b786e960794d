package get_product

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/repo"
	"github.com/light-bringer/perfume-catalog/internal/testutil"
)

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()

	remoteProduct, err := domain.NewProduct("r1", testutil.CreateData("Remote"), testutil.Epoch)
	require.NoError(t, err)
	localProduct, err := domain.NewProduct("l1", testutil.CreateData("Local"), testutil.Epoch)
	require.NoError(t, err)

	gw := testutil.NewFakeGateway(clk)
	gw.Seed(remoteProduct)
	local := repo.NewLocalBackend(testutil.NewMemoryStore(localProduct), clk, zap.NewNop())
	query := NewQuery(repo.NewRemoteBackend(gw, nil, nil, clk, zap.NewNop()), local, zap.NewNop())

	t.Run("found", func(t *testing.T) {
		got, err := query.Execute(ctx, &Request{ProductID: "r1"})
		require.NoError(t, err)
		assert.Equal(t, "Remote", got.NameEN)
	})

	t.Run("not found does not fall back", func(t *testing.T) {
		_, err := query.Execute(ctx, &Request{ProductID: "l1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, domain.MsgProductNotFound, err.Error())
	})

	t.Run("remote failure falls back", func(t *testing.T) {
		gw.QueryErr = errors.New("unavailable")
		defer func() { gw.QueryErr = nil }()

		got, err := query.Execute(ctx, &Request{ProductID: "l1"})
		require.NoError(t, err)
		assert.Equal(t, "Local", got.NameEN)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := query.Execute(ctx, &Request{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
		assert.Equal(t, domain.MsgProductIDRequired, err.Error())
	})
}
