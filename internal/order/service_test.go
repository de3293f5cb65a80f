package order_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/order"
	"github.com/hollis/threadbare/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newService(t *testing.T) (*order.Service, *discount.Service) {
	t.Helper()
	st := store.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	discounts := discount.NewService(st, logger)
	return order.NewService(st, discounts, logger), discounts
}

func validParams() domain.OrderParams {
	return domain.OrderParams{
		Email: "buyer@example.com",
		Items: []domain.OrderItem{
			{SKU: "TEE-M", Name: "Classic Tee M", Price: dec("19.99"), Quantity: 2},
		},
		Totals: domain.OrderTotals{
			Subtotal:    dec("39.98"),
			ShippingFee: dec("5.00"),
			Total:       dec("44.98"),
			Currency:    "USD",
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), validParams())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, created.Status)
	assert.NotEmpty(t, created.Number)
	require.Len(t, created.Items, 1)
	assert.True(t, dec("19.99").Equal(created.Items[0].Price), "item price frozen at creation")
	assert.True(t, dec("44.98").Equal(created.Totals.Total))
	assert.Nil(t, created.DiscountCode)
}

func TestCreateOrderRequiresItemsAndEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	params := validParams()
	params.Items = nil
	_, err := svc.Create(ctx, params)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	params = validParams()
	params.Email = "not-an-email"
	_, err = svc.Create(ctx, params)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestCreateOrderAppliesDiscount(t *testing.T) {
	svc, discounts := newService(t)
	ctx := context.Background()

	_, err := discounts.Create(ctx, domain.DiscountParams{
		Code: "TEN", Type: domain.DiscountTypePercentage, Value: dec("10"),
	})
	require.NoError(t, err)

	params := validParams()
	code := "ten"
	params.DiscountCode = &code

	created, err := svc.Create(ctx, params)
	require.NoError(t, err)

	require.NotNil(t, created.DiscountCode)
	assert.Equal(t, "TEN", *created.DiscountCode, "stored normalized")
	require.NotNil(t, created.DiscountAmount)
	assert.True(t, dec("4.00").Equal(*created.DiscountAmount), "got %s", created.DiscountAmount)
}

func TestCreateOrderRejectsBadDiscount(t *testing.T) {
	svc, _ := newService(t)

	params := validParams()
	code := "NOPE"
	params.DiscountCode = &code

	_, err := svc.Create(context.Background(), params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDiscountNotFound))
}

func TestTransition(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validParams())
	require.NoError(t, err)

	paid, err := svc.Transition(ctx, created.ID, domain.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, paid.Status)

	shipped, err := svc.Transition(ctx, created.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)

	// Shipped orders cannot be cancelled.
	_, err = svc.Transition(ctx, created.ID, domain.OrderStatusCancelled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	delivered, err := svc.Transition(ctx, created.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, delivered.Status)

	// Delivered is terminal.
	_, err = svc.Transition(ctx, created.ID, domain.OrderStatusPending)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestTransitionUnknownOrder(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Transition(context.Background(), uuid.New(), domain.OrderStatusPaid)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
