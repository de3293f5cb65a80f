package inventory_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/inventory"
	"github.com/hollis/threadbare/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*inventory.Ledger, uuid.UUID, uuid.UUID) {
	t.Helper()
	st := store.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	location, err := st.CreateLocation(context.Background(), domain.Location{Name: domain.DefaultLocationName})
	require.NoError(t, err)

	return inventory.NewLedger(st, logger), uuid.New(), location.ID
}

func TestSetOnHandCreatesLevel(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)

	lvl, err := ledger.SetOnHand(context.Background(), variantID, locationID, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(10), lvl.OnHand)
	assert.Equal(t, int32(10), lvl.Available)
	assert.Equal(t, int32(0), lvl.Committed)
	assert.True(t, lvl.Consistent())
}

func TestSetOnHandPreservesCommitted(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)
	ctx := context.Background()

	_, err := ledger.SetOnHand(ctx, variantID, locationID, 10)
	require.NoError(t, err)
	_, err = ledger.Commit(ctx, variantID, locationID, 4)
	require.NoError(t, err)

	lvl, err := ledger.SetOnHand(ctx, variantID, locationID, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(6), lvl.OnHand)
	assert.Equal(t, int32(4), lvl.Committed)
	assert.Equal(t, int32(2), lvl.Available)
	assert.True(t, lvl.Consistent())

	// Cannot drop the physical count below what is already reserved.
	_, err = ledger.SetOnHand(ctx, variantID, locationID, 3)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestAdjust(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)
	ctx := context.Background()

	_, err := ledger.Adjust(ctx, variantID, locationID, 5)
	require.NoError(t, err)

	lvl, err := ledger.Adjust(ctx, variantID, locationID, -2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), lvl.Available)
	assert.Equal(t, int32(3), lvl.OnHand)
	assert.True(t, lvl.Consistent())

	_, err = ledger.Adjust(ctx, variantID, locationID, -10)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestCommitReleaseFulfill(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)
	ctx := context.Background()

	_, err := ledger.SetOnHand(ctx, variantID, locationID, 10)
	require.NoError(t, err)

	lvl, err := ledger.Commit(ctx, variantID, locationID, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(4), lvl.Available)
	assert.Equal(t, int32(6), lvl.Committed)
	assert.Equal(t, int32(10), lvl.OnHand)
	assert.True(t, lvl.Consistent())

	_, err = ledger.Commit(ctx, variantID, locationID, 5)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	lvl, err = ledger.Release(ctx, variantID, locationID, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(6), lvl.Available)
	assert.Equal(t, int32(4), lvl.Committed)
	assert.True(t, lvl.Consistent())

	lvl, err = ledger.Fulfill(ctx, variantID, locationID, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(6), lvl.OnHand)
	assert.Equal(t, int32(0), lvl.Committed)
	assert.Equal(t, int32(6), lvl.Available)
	assert.True(t, lvl.Consistent())

	_, err = ledger.Fulfill(ctx, variantID, locationID, 1)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestSetUnavailable(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)
	ctx := context.Background()

	_, err := ledger.SetOnHand(ctx, variantID, locationID, 10)
	require.NoError(t, err)

	lvl, err := ledger.SetUnavailable(ctx, variantID, locationID, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(7), lvl.Available)
	assert.Equal(t, int32(3), lvl.Unavailable)
	assert.Equal(t, int32(10), lvl.OnHand)
	assert.True(t, lvl.Consistent())

	// Reducing unavailable returns units to the sellable pool.
	lvl, err = ledger.SetUnavailable(ctx, variantID, locationID, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(9), lvl.Available)
	assert.True(t, lvl.Consistent())

	_, err = ledger.SetUnavailable(ctx, variantID, locationID, 20)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestMutationsRequireExistingLevel(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)

	_, err := ledger.Commit(context.Background(), variantID, locationID, 1)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestQuantityMustBePositive(t *testing.T) {
	ledger, variantID, locationID := newLedger(t)

	_, err := ledger.Commit(context.Background(), variantID, locationID, 0)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = ledger.Release(context.Background(), variantID, locationID, -1)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
