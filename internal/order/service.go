// Package order creates purchase records and walks them through their
// status lifecycle. Totals are client-asserted and frozen at creation
// together with the item snapshot; a discount code, when given, is verified
// against the asserted subtotal and its amount recorded on the order.
package order

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
)

type Service struct {
	store     store.Store
	discounts *discount.Service
	logger    *slog.Logger
}

func NewService(st store.Store, discounts *discount.Service, logger *slog.Logger) *Service {
	return &Service{store: st, discounts: discounts, logger: logger}
}

// Create validates the params, verifies the optional discount code against
// the asserted subtotal and persists the order in PENDING state.
func (s *Service) Create(ctx context.Context, params domain.OrderParams) (domain.Order, error) {
	const op = "order.Create"

	if err := domain.Validate(op, &params); err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		Number: newOrderNumber(),
		Email:  params.Email,
		Items:  params.Items,
		Totals: params.Totals,
		Status: domain.OrderStatusPending,
	}

	if params.DiscountCode != nil && *params.DiscountCode != "" {
		d, amount, err := s.discounts.Verify(ctx, *params.DiscountCode, params.Totals.Subtotal)
		if err != nil {
			return domain.Order{}, err
		}
		o.DiscountCode = &d.Code
		o.DiscountAmount = &amount
	}

	created, err := s.store.CreateOrder(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", created.ID.String()),
		slog.String("number", created.Number),
		slog.Int("items", len(created.Items)),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	return s.store.GetOrderByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.store.ListOrders(ctx)
}

// Transition moves an order to the requested status, enforcing the
// lifecycle graph inside one transaction so concurrent moves cannot skip
// states.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to domain.OrderStatus) (domain.Order, error) {
	var out domain.Order
	err := s.store.WithTx(ctx, func(q store.Querier) error {
		o, err := q.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}
		if !domain.CanTransition(o.Status, to) {
			return domain.ErrInvalidTransition
		}
		out, err = q.UpdateOrderStatus(ctx, id, to)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", id.String()),
		slog.String("status", string(to)),
	)
	return out, nil
}

// newOrderNumber generates a human-readable order reference. Uniqueness is
// not load-bearing; the surrogate id is the real identity.
func newOrderNumber() string {
	return fmt.Sprintf("TB-%s-%04d", time.Now().UTC().Format("20060102"), rand.Intn(10000))
}
