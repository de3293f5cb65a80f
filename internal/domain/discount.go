package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType distinguishes fixed-amount from percentage discounts.
type DiscountType string

const (
	DiscountTypeFlat       DiscountType = "FLAT"
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

// Discount is identified by its normalized (trimmed, upper-cased) code.
// Value is a money amount for FLAT and a 0-100 percentage for PERCENTAGE.
// MaxDiscount only applies to PERCENTAGE discounts.
type Discount struct {
	ID          uuid.UUID
	Code        string
	Type        DiscountType
	Value       decimal.Decimal
	MinSubtotal *decimal.Decimal
	MaxDiscount *decimal.Decimal
	StartsAt    *time.Time
	EndsAt      *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DiscountParams carries discount creation/update input.
type DiscountParams struct {
	Code        string           `json:"code" validate:"required"`
	Type        DiscountType     `json:"type" validate:"required,oneof=FLAT PERCENTAGE"`
	Value       decimal.Decimal  `json:"value"`
	MinSubtotal *decimal.Decimal `json:"minSubtotal"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount"`
	StartsAt    *time.Time       `json:"startsAt"`
	EndsAt      *time.Time       `json:"endsAt"`
	IsActive    *bool            `json:"isActive"`
}

// Discount-specific errors. NotLive and NotApplicable are distinct
// user-facing verification failures.
var (
	ErrDiscountNotFound      = &Error{Code: ENOTFOUND, Message: "Discount code not found"}
	ErrDiscountNotLive       = &Error{Code: EINVALID, Message: "Discount code is inactive or expired"}
	ErrDiscountNotApplicable = &Error{Code: EINVALID, Message: "Discount code is not applicable to this order"}
	ErrDuplicateCode         = &Error{Code: ECONFLICT, Message: "Discount code already exists"}
)
