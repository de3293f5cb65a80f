package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the finite lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions enumerates the legal status moves. CANCELLED is terminal
// and only reachable before shipment.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is an immutable snapshot of a purchased line at order time,
// independent of later catalog changes.
type OrderItem struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

// OrderTotals holds client-asserted money totals captured at creation.
type OrderTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
}

// Order is the persisted purchase record. Items and totals are frozen at
// creation time; only Status moves afterwards.
type Order struct {
	ID             uuid.UUID
	Number         string
	Email          string
	Items          []OrderItem
	Totals         OrderTotals
	DiscountCode   *string
	DiscountAmount *decimal.Decimal
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderParams carries order creation input.
type OrderParams struct {
	Email        string      `json:"email" validate:"required,email"`
	Items        []OrderItem `json:"items" validate:"required,min=1,dive"`
	Totals       OrderTotals `json:"totals"`
	DiscountCode *string     `json:"discountCode"`
}

var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInvalidTransition = &Error{Code: EINVALID, Message: "Illegal order status transition"}
)
