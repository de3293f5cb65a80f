// Package discount implements order-pricing discount calculation. The
// calculation functions are pure; persistence and verification live on the
// Service in this package.
package discount

import (
	"strings"
	"time"

	"github.com/hollis/threadbare/internal/domain"
	"github.com/shopspring/decimal"
)

// epsilon absorbs binary representation noise before the half-up rounding
// of a final amount.
var epsilon = decimal.New(1, -9)

var oneHundred = decimal.NewFromInt(100)

// NormalizeCode canonicalizes a user-entered code: trimmed, upper-cased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsLive reports whether the discount is redeemable at the given instant.
// An inactive discount is never live, and the optional startsAt/endsAt
// window is inclusive on both bounds.
func IsLive(d domain.Discount, now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	return true
}

// CalculateAmount computes the discount amount for a subtotal.
//
// The amount is zero when the subtotal is non-positive, below the minimum
// subtotal, or the discount value is non-positive. FLAT discounts apply
// their value uncapped. PERCENTAGE discounts apply value percent of the
// subtotal, capped by maxDiscount when set and positive. The result is
// rounded half-up to two decimal places and clamped to [0, subtotal].
func CalculateAmount(d domain.Discount, subtotal decimal.Decimal) decimal.Decimal {
	zero := decimal.Zero

	if subtotal.LessThanOrEqual(zero) {
		return zero
	}
	if d.MinSubtotal != nil && subtotal.LessThan(*d.MinSubtotal) {
		return zero
	}
	if d.Value.LessThanOrEqual(zero) {
		return zero
	}

	var amount decimal.Decimal
	switch d.Type {
	case domain.DiscountTypeFlat:
		amount = d.Value
	case domain.DiscountTypePercentage:
		amount = subtotal.Mul(d.Value).Div(oneHundred)
		if d.MaxDiscount != nil && d.MaxDiscount.GreaterThan(zero) && amount.GreaterThan(*d.MaxDiscount) {
			amount = *d.MaxDiscount
		}
	default:
		return zero
	}

	amount = amount.Add(epsilon).Round(2)
	if amount.LessThan(zero) {
		return zero
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}
