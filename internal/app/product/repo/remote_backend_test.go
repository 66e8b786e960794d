package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/perfume-catalog/internal/app/product/domain"
	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
	"github.com/light-bringer/perfume-catalog/internal/testutil"
)

type stubPreflight struct {
	err   error
	calls int
}

func (s *stubPreflight) Preflight(ctx context.Context) error {
	s.calls++
	return s.err
}

type remoteFixture struct {
	gateway   *testutil.FakeGateway
	codec     *imagepath.Codec
	preflight *stubPreflight
	clock     *clock.MockClock
	backend   *RemoteBackend
}

func newRemoteFixture() *remoteFixture {
	clk := testutil.NewMockClock()
	gw := testutil.NewFakeGateway(clk)
	codec := imagepath.NewCodec(testutil.PublicBaseURL, imagepath.DefaultBucket, clk)
	pf := &stubPreflight{}
	return &remoteFixture{
		gateway:   gw,
		codec:     codec,
		preflight: pf,
		clock:     clk,
		backend:   NewRemoteBackend(gw, codec, pf, clk, zap.NewNop()),
	}
}

func TestRemoteBackend_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newRemoteFixture()

	created, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.ImageURL)
	assert.Equal(t, testutil.Epoch, created.CreatedAt)
	assert.Equal(t, testutil.Epoch, created.UpdatedAt)

	got, err := f.backend.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.NameEN, got.NameEN)
	assert.Equal(t, created.NameAR, got.NameAR)
	assert.True(t, created.Price.Equals(got.Price))

	f.clock.Advance(time.Minute)
	updated, err := f.backend.Update(ctx, created.ID, domain.UpdateProductData{Price: testutil.Price("10")})
	require.NoError(t, err)
	assert.Equal(t, "10", updated.Price.String())
	assert.Equal(t, created.NameEN, updated.NameEN)
	assert.Equal(t, created.DescriptionAR, updated.DescriptionAR)
	assert.Equal(t, testutil.Epoch.Add(time.Minute), updated.UpdatedAt)

	deleted, err := f.backend.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = f.backend.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.backend.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRemoteBackend_ListFiltersInactive(t *testing.T) {
	ctx := context.Background()
	f := newRemoteFixture()

	active, err := f.backend.Create(ctx, testutil.CreateData("Active"))
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	hidden, err := f.backend.Create(ctx, testutil.CreateData("Hidden"))
	require.NoError(t, err)
	_, err = f.backend.Update(ctx, hidden.ID, domain.UpdateProductData{IsActive: testutil.Ptr(false)})
	require.NoError(t, err)

	visible, err := f.backend.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, active.ID, visible[0].ID)

	everything, err := f.backend.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, everything, 2)
	assert.Equal(t, hidden.ID, everything[0].ID, "newest first")
}

func TestRemoteBackend_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("query failure is a persistence failure", func(t *testing.T) {
		f := newRemoteFixture()
		f.gateway.QueryErr = errors.New("deadline exceeded")
		_, err := f.backend.List(ctx, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
		assert.Equal(t, "deadline exceeded", err.Error())
	})

	t.Run("update of missing row is not found", func(t *testing.T) {
		f := newRemoteFixture()
		_, err := f.backend.Update(ctx, "missing", domain.UpdateProductData{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unavailable gateway", func(t *testing.T) {
		f := newRemoteFixture()
		f.gateway.Available = false
		_, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
		assert.Equal(t, 0, f.gateway.TotalCalls())
	})

	t.Run("validation happens before insert", func(t *testing.T) {
		f := newRemoteFixture()
		data := testutil.CreateData("Oud")
		data.Price = testutil.Price("-1")
		_, err := f.backend.Create(ctx, data)
		assert.ErrorIs(t, err, domain.ErrValidationFailed)
		assert.Equal(t, 0, f.gateway.Calls("insert"))
	})
}

func TestRemoteBackend_Authorize(t *testing.T) {
	f := newRemoteFixture()

	err := f.backend.Authorize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, domain.MsgAuthRequired, err.Error())

	assert.NoError(t, f.backend.Authorize(testutil.AdminContext()))

	f.gateway.SessionErr = errors.New("session lookup failed")
	assert.ErrorIs(t, f.backend.Authorize(testutil.AdminContext()), domain.ErrPersistenceFailed)
}

func TestRemoteBackend_StoreImage(t *testing.T) {
	ctx := testutil.AdminContext()

	t.Run("uploads and links the image", func(t *testing.T) {
		f := newRemoteFixture()
		p, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
		require.NoError(t, err)

		url, err := f.backend.StoreImage(ctx, p.ID, testutil.PNG("bottle.PNG"))
		require.NoError(t, err)

		objectPath := f.codec.ExtractPath(url)
		require.NotEmpty(t, objectPath)
		assert.Equal(t, f.codec.DeriveUploadPath(p.ID, "bottle.png"), objectPath)
		assert.True(t, f.gateway.HasObject(imagepath.DefaultBucket, objectPath))
		assert.Equal(t, 1, f.preflight.calls)

		got, err := f.backend.Get(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ImageURL)
		assert.Equal(t, url, *got.ImageURL)
	})

	t.Run("failed preflight stops the upload", func(t *testing.T) {
		f := newRemoteFixture()
		p, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
		require.NoError(t, err)
		f.preflight.err = errors.New("Bucket not found")

		_, err = f.backend.StoreImage(ctx, p.ID, testutil.PNG("a.png"))
		assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
		assert.Equal(t, 0, f.gateway.Calls("upload"))
	})

	t.Run("upload failure keeps the message", func(t *testing.T) {
		f := newRemoteFixture()
		p, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
		require.NoError(t, err)
		f.gateway.DropBucket(imagepath.DefaultBucket)

		_, err = f.backend.StoreImage(ctx, p.ID, testutil.PNG("a.png"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
		assert.Equal(t, "Bucket not found", err.Error())
	})

	t.Run("record update failure leaves the object orphaned", func(t *testing.T) {
		f := newRemoteFixture()
		p, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
		require.NoError(t, err)
		f.gateway.UpdateErr = errors.New("row locked")

		_, err = f.backend.StoreImage(ctx, p.ID, testutil.PNG("a.png"))
		assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
		assert.Equal(t, 1, f.gateway.ObjectCount())
	})
}

func TestRemoteBackend_RemoveImage(t *testing.T) {
	ctx := testutil.AdminContext()

	t.Run("removes object and clears the record", func(t *testing.T) {
		f := newRemoteFixture()
		p, err := f.backend.Create(ctx, testutil.CreateData("Oud"))
		require.NoError(t, err)
		url, err := f.backend.StoreImage(ctx, p.ID, testutil.PNG("a.png"))
		require.NoError(t, err)

		require.NoError(t, f.backend.RemoveImage(ctx, p.ID, url))
		assert.Equal(t, 0, f.gateway.ObjectCount())

		got, err := f.backend.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ImageURL)
	})

	t.Run("unparsable url", func(t *testing.T) {
		f := newRemoteFixture()
		err := f.backend.RemoveImage(ctx, "p1", "/placeholder.svg")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnparsableURL)
		assert.Equal(t, domain.MsgUnparsableImageURL, err.Error())
		assert.Equal(t, 0, f.gateway.Calls("remove"))
	})

	t.Run("missing product is not an error", func(t *testing.T) {
		f := newRemoteFixture()
		url := f.codec.PublicURL("products/gone-1.jpg")
		assert.NoError(t, f.backend.RemoveImage(ctx, "gone", url))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newRemoteFixture()
		f.gateway.RemoveErr = errors.New("permission denied")
		err := f.backend.RemoveImage(ctx, "p1", f.codec.PublicURL("products/p1-1.jpg"))
		assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	})
}

func TestRemoteBackend_DiscardImage(t *testing.T) {
	ctx := context.Background()
	f := newRemoteFixture()

	assert.NoError(t, f.backend.DiscardImage(ctx, "/placeholder.svg"))
	assert.Equal(t, 0, f.gateway.Calls("remove"))

	assert.NoError(t, f.backend.DiscardImage(ctx, f.codec.PublicURL("products/x.jpg")))
	assert.Equal(t, 1, f.gateway.Calls("remove"))

	f.gateway.RemoveErr = errors.New("boom")
	assert.ErrorIs(t, f.backend.DiscardImage(ctx, f.codec.PublicURL("products/x.jpg")), domain.ErrPersistenceFailed)
}
