// Package inventory maintains per-location stock counters for variants.
// Every mutation preserves the arithmetic invariant
// onHand = available + committed + unavailable.
package inventory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
)

// Ledger applies stock movements transactionally against one
// (variant, location) level at a time.
type Ledger struct {
	store  store.Store
	logger *slog.Logger
}

func NewLedger(st store.Store, logger *slog.Logger) *Ledger {
	return &Ledger{store: st, logger: logger}
}

// SetOnHand overwrites the physical count. Committed and unavailable stock
// are preserved, so the new count must cover them; the remainder becomes
// available. A missing level is created.
func (l *Ledger) SetOnHand(ctx context.Context, variantID, locationID uuid.UUID, onHand int32) (domain.InventoryLevel, error) {
	const op = "inventory.SetOnHand"

	if onHand < 0 {
		return domain.InventoryLevel{}, domain.Invalid(op, "on-hand count must not be negative")
	}

	return l.mutate(ctx, variantID, locationID, true, func(lvl *domain.InventoryLevel) error {
		if onHand < lvl.Committed+lvl.Unavailable {
			return domain.Invalid(op, "on-hand count cannot drop below committed plus unavailable stock")
		}
		lvl.OnHand = onHand
		lvl.Available = onHand - lvl.Committed - lvl.Unavailable
		return nil
	})
}

// Adjust moves available stock (and on-hand with it) by a signed delta,
// e.g. a recount or received shipment. Available stock never goes negative.
func (l *Ledger) Adjust(ctx context.Context, variantID, locationID uuid.UUID, delta int32) (domain.InventoryLevel, error) {
	return l.mutate(ctx, variantID, locationID, delta > 0, func(lvl *domain.InventoryLevel) error {
		if lvl.Available+delta < 0 {
			return domain.ErrInsufficientStock
		}
		lvl.Available += delta
		lvl.OnHand += delta
		return nil
	})
}

// Commit reserves available stock for an order. The units stay on hand but
// can no longer be sold.
func (l *Ledger) Commit(ctx context.Context, variantID, locationID uuid.UUID, quantity int32) (domain.InventoryLevel, error) {
	const op = "inventory.Commit"

	if quantity <= 0 {
		return domain.InventoryLevel{}, domain.Invalid(op, "quantity must be positive")
	}
	return l.mutate(ctx, variantID, locationID, false, func(lvl *domain.InventoryLevel) error {
		if lvl.Available < quantity {
			return domain.ErrInsufficientStock
		}
		lvl.Available -= quantity
		lvl.Committed += quantity
		return nil
	})
}

// Release returns committed stock to the sellable pool, e.g. on order
// cancellation.
func (l *Ledger) Release(ctx context.Context, variantID, locationID uuid.UUID, quantity int32) (domain.InventoryLevel, error) {
	const op = "inventory.Release"

	if quantity <= 0 {
		return domain.InventoryLevel{}, domain.Invalid(op, "quantity must be positive")
	}
	return l.mutate(ctx, variantID, locationID, false, func(lvl *domain.InventoryLevel) error {
		if lvl.Committed < quantity {
			return domain.Invalid(op, "cannot release more than is committed")
		}
		lvl.Committed -= quantity
		lvl.Available += quantity
		return nil
	})
}

// Fulfill removes committed stock from the building, e.g. on shipment.
func (l *Ledger) Fulfill(ctx context.Context, variantID, locationID uuid.UUID, quantity int32) (domain.InventoryLevel, error) {
	const op = "inventory.Fulfill"

	if quantity <= 0 {
		return domain.InventoryLevel{}, domain.Invalid(op, "quantity must be positive")
	}
	return l.mutate(ctx, variantID, locationID, false, func(lvl *domain.InventoryLevel) error {
		if lvl.Committed < quantity {
			return domain.Invalid(op, "cannot fulfill more than is committed")
		}
		lvl.Committed -= quantity
		lvl.OnHand -= quantity
		return nil
	})
}

// SetUnavailable marks stock as damaged or otherwise unsellable, moving
// units between the available and unavailable pools.
func (l *Ledger) SetUnavailable(ctx context.Context, variantID, locationID uuid.UUID, unavailable int32) (domain.InventoryLevel, error) {
	const op = "inventory.SetUnavailable"

	if unavailable < 0 {
		return domain.InventoryLevel{}, domain.Invalid(op, "unavailable count must not be negative")
	}
	return l.mutate(ctx, variantID, locationID, false, func(lvl *domain.InventoryLevel) error {
		delta := unavailable - lvl.Unavailable
		if lvl.Available-delta < 0 {
			return domain.ErrInsufficientStock
		}
		lvl.Unavailable = unavailable
		lvl.Available -= delta
		return nil
	})
}

// Levels lists every location-level for a variant.
func (l *Ledger) Levels(ctx context.Context, variantID uuid.UUID) ([]domain.InventoryLevel, error) {
	return l.store.ListInventoryLevels(ctx, variantID)
}

func (l *Ledger) mutate(ctx context.Context, variantID, locationID uuid.UUID, createMissing bool, fn func(*domain.InventoryLevel) error) (domain.InventoryLevel, error) {
	var out domain.InventoryLevel
	err := l.store.WithTx(ctx, func(q store.Querier) error {
		lvl, err := q.GetInventoryLevel(ctx, variantID, locationID)
		if err != nil {
			if domain.ErrorCode(err) != domain.ENOTFOUND || !createMissing {
				return err
			}
			lvl = domain.InventoryLevel{VariantID: variantID, LocationID: locationID}
		}

		if err := fn(&lvl); err != nil {
			return err
		}

		out, err = q.UpsertInventoryLevel(ctx, lvl)
		return err
	})
	if err != nil {
		return domain.InventoryLevel{}, err
	}

	l.logger.DebugContext(ctx, "inventory level updated",
		slog.String("variant_id", variantID.String()),
		slog.Int("available", int(out.Available)),
		slog.Int("on_hand", int(out.OnHand)),
	)
	return out, nil
}
