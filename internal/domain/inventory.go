package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLocationName is used when a variant carries stock data without
// naming a location. Locations are created lazily by name.
const DefaultLocationName = "Default"

// Location is a named stock location.
type Location struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// InventoryLevel tracks stock counters for one (variant, location) pair.
// Invariant: OnHand = Available + Committed + Unavailable after every
// mutation.
type InventoryLevel struct {
	VariantID   uuid.UUID
	LocationID  uuid.UUID
	Available   int32
	OnHand      int32
	Committed   int32
	Unavailable int32
	UpdatedAt   time.Time
}

// Consistent reports whether the on-hand arithmetic invariant holds.
func (l InventoryLevel) Consistent() bool {
	return l.OnHand == l.Available+l.Committed+l.Unavailable
}

var (
	ErrLocationNotFound       = &Error{Code: ENOTFOUND, Message: "Location not found"}
	ErrInventoryLevelNotFound = &Error{Code: ENOTFOUND, Message: "Inventory level not found"}
	ErrInsufficientStock      = &Error{Code: EINVALID, Message: "Insufficient stock for requested quantity"}
)
