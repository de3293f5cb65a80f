package discount_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*discount.Service, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return discount.NewService(st, logger), st
}

func boolPtr(b bool) *bool { return &b }

func TestCreateNormalizesCode(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), domain.DiscountParams{
		Code:  "  summer10 ",
		Type:  domain.DiscountTypePercentage,
		Value: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", created.Code)
	assert.True(t, created.IsActive, "active by default")
}

func TestCreateDuplicateCodeConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.DiscountParams{
		Code: "WELCOME", Type: domain.DiscountTypeFlat, Value: dec("5"),
	})
	require.NoError(t, err)

	// Same code after normalization.
	_, err = svc.Create(ctx, domain.DiscountParams{
		Code: "welcome ", Type: domain.DiscountTypeFlat, Value: dec("5"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateCode))
}

func TestCreateRejectsPercentOverHundred(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), domain.DiscountParams{
		Code: "BIG", Type: domain.DiscountTypePercentage, Value: dec("150"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	svc, _ := newService(t)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err := svc.Create(context.Background(), domain.DiscountParams{
		Code: "WINDOW", Type: domain.DiscountTypeFlat, Value: dec("5"),
		StartsAt: &start, EndsAt: &end,
	})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCreateDropsMaxDiscountForFlat(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), domain.DiscountParams{
		Code: "FLAT5", Type: domain.DiscountTypeFlat, Value: dec("5"),
		MaxDiscount: decPtr("3"),
	})
	require.NoError(t, err)
	assert.Nil(t, created.MaxDiscount)
}

func TestVerify(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.DiscountParams{
		Code: "TEN", Type: domain.DiscountTypePercentage, Value: dec("10"),
		MinSubtotal: decPtr("50"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.DiscountParams{
		Code: "PAUSED", Type: domain.DiscountTypeFlat, Value: dec("5"),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	t.Run("grants amount for live applicable code", func(t *testing.T) {
		d, amount, err := svc.Verify(ctx, "ten", dec("100"))
		require.NoError(t, err)
		assert.Equal(t, "TEN", d.Code)
		assert.True(t, dec("10").Equal(amount))
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, _, err := svc.Verify(ctx, "NOPE", dec("100"))
		assert.True(t, errors.Is(err, domain.ErrDiscountNotFound))
	})

	t.Run("inactive code is not live", func(t *testing.T) {
		_, _, err := svc.Verify(ctx, "PAUSED", dec("100"))
		assert.True(t, errors.Is(err, domain.ErrDiscountNotLive))
	})

	t.Run("below minimum subtotal is not applicable", func(t *testing.T) {
		_, _, err := svc.Verify(ctx, "TEN", dec("40"))
		assert.True(t, errors.Is(err, domain.ErrDiscountNotApplicable))
	})
}

func TestUpdate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.DiscountParams{
		Code: "SPRING", Type: domain.DiscountTypePercentage, Value: dec("10"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, domain.DiscountParams{
		Code: "spring", Type: domain.DiscountTypePercentage, Value: dec("15"),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "SPRING", updated.Code)
	assert.True(t, dec("15").Equal(updated.Value))
	assert.False(t, updated.IsActive)
}

func TestGetByIDOrCode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.DiscountParams{
		Code: "LOOKUP", Type: domain.DiscountTypeFlat, Value: dec("5"),
	})
	require.NoError(t, err)

	byID, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byCode, err := svc.Get(ctx, "lookup")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)
}
