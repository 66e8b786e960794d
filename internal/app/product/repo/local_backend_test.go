package repo

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/testutil"
)

func TestLocalBackend_CreateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")
	clk := testutil.NewMockClock()

	store, err := OpenBoltStore(path, clk, zap.NewNop())
	require.NoError(t, err)
	backend := NewLocalBackend(store, clk, zap.NewNop())

	created, err := backend.Create(ctx, testutil.CreateData("Oud"))
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err, "local ids are UUIDs")
	assert.True(t, created.IsActive)
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path, clk, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := NewLocalBackend(reopened, clk, zap.NewNop()).Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oud", got.NameEN)
}

func TestLocalBackend_PriceSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")
	clk := testutil.NewMockClock()

	store, err := OpenBoltStore(path, clk, zap.NewNop())
	require.NoError(t, err)

	data := testutil.CreateData("Amber")
	data.Price = testutil.Price("0.123456789")
	created, err := NewLocalBackend(store, clk, zap.NewNop()).Create(ctx, data)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path, clk, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := NewLocalBackend(reopened, clk, zap.NewNop()).Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, created.Price.Equals(got.Price), "created %s, read back %s", created.Price, got.Price)
	assert.Equal(t, "0.123456789", got.Price.String())
}

func TestLocalBackend_List(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()

	old := newTestProduct(t, "old", "Old", testutil.Epoch)
	mid := newTestProduct(t, "mid", "Mid", testutil.Epoch.Add(time.Hour))
	mid.IsActive = false
	fresh := newTestProduct(t, "new", "New", testutil.Epoch.Add(2*time.Hour))

	backend := NewLocalBackend(testutil.NewMemoryStore(old, mid, fresh), clk, zap.NewNop())

	t.Run("active only, newest first", func(t *testing.T) {
		products, err := backend.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "new", products[0].ID)
		assert.Equal(t, "old", products[1].ID)
	})

	t.Run("including inactive", func(t *testing.T) {
		products, err := backend.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, []string{"new", "mid", "old"}, []string{products[0].ID, products[1].ID, products[2].ID})
	})
}

func TestLocalBackend_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	store := testutil.NewMemoryStore(newTestProduct(t, "p1", "Oud", testutil.Epoch))
	backend := NewLocalBackend(store, clk, zap.NewNop())

	clk.Advance(time.Minute)
	updated, err := backend.Update(ctx, "p1", domain.UpdateProductData{Price: testutil.Price("10")})
	require.NoError(t, err)
	assert.Equal(t, "10", updated.Price.String())
	assert.Equal(t, "Oud", updated.NameEN)
	assert.Equal(t, testutil.Epoch.Add(time.Minute), updated.UpdatedAt)

	_, err = backend.Update(ctx, "missing", domain.UpdateProductData{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := backend.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", deleted.ID)

	_, err = backend.Get(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = backend.Delete(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalBackend_Images(t *testing.T) {
	ctx := context.Background()
	clk := testutil.NewMockClock()
	store := testutil.NewMemoryStore(newTestProduct(t, "p1", "Oud", testutil.Epoch))
	backend := NewLocalBackend(store, clk, zap.NewNop())

	require.NoError(t, backend.Authorize(ctx))

	url, err := backend.StoreImage(ctx, "p1", testutil.PNG("a.png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	got, err := backend.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, url, *got.ImageURL)

	_, err = backend.StoreImage(ctx, "missing", testutil.PNG("a.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.MsgProductNotFound, err.Error())

	require.NoError(t, backend.RemoveImage(ctx, "p1", url))
	got, err = backend.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got.ImageURL)

	assert.NoError(t, backend.RemoveImage(ctx, "missing", url))
	assert.NoError(t, backend.DiscardImage(ctx, url))
}

func TestLocalBackend_StoreFailures(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore(newTestProduct(t, "p1", "Oud", testutil.Epoch))
	backend := NewLocalBackend(store, testutil.NewMockClock(), zap.NewNop())

	store.WriteErr = errors.New("disk full")
	_, err := backend.Create(ctx, testutil.CreateData("Rose"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	assert.Equal(t, "disk full", err.Error())

	store.LoadErr = errors.New("corrupt")
	_, err = backend.List(ctx, true)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
}

func TestLocalBackend_ValidationFailure(t *testing.T) {
	backend := NewLocalBackend(testutil.NewMemoryStore(), testutil.NewMockClock(), zap.NewNop())
	data := testutil.CreateData("Oud")
	data.NameAR = ""
	_, err := backend.Create(context.Background(), data)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}
