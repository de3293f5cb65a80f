package discount_test

import (
	"testing"
	"time"

	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SUMMER10", discount.NormalizeCode("  summer10 "))
	assert.Equal(t, "WELCOME", discount.NormalizeCode("Welcome"))
	assert.Equal(t, "", discount.NormalizeCode("   "))
}

func TestIsLive(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		d    domain.Discount
		want bool
	}{
		{
			name: "active with no window",
			d:    domain.Discount{IsActive: true},
			want: true,
		},
		{
			name: "inactive is never live",
			d:    domain.Discount{IsActive: false},
			want: false,
		},
		{
			name: "future start not live even when active",
			d:    domain.Discount{IsActive: true, StartsAt: &future},
			want: false,
		},
		{
			name: "past end not live",
			d:    domain.Discount{IsActive: true, EndsAt: &past},
			want: false,
		},
		{
			name: "inside window live",
			d:    domain.Discount{IsActive: true, StartsAt: &past, EndsAt: &future},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, discount.IsLive(tt.d, now))
		})
	}
}

func TestCalculateAmount(t *testing.T) {
	tests := []struct {
		name     string
		d        domain.Discount
		subtotal string
		want     string
	}{
		{
			name:     "percentage capped by maxDiscount",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("10"), MaxDiscount: decPtr("50")},
			subtotal: "1000",
			want:     "50",
		},
		{
			name:     "percentage uncapped",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("10")},
			subtotal: "1000",
			want:     "100",
		},
		{
			name:     "flat below minSubtotal is zero",
			d:        domain.Discount{Type: domain.DiscountTypeFlat, Value: dec("200"), MinSubtotal: decPtr("500")},
			subtotal: "400",
			want:     "0",
		},
		{
			name:     "flat at minSubtotal applies",
			d:        domain.Discount{Type: domain.DiscountTypeFlat, Value: dec("200"), MinSubtotal: decPtr("500")},
			subtotal: "500",
			want:     "200",
		},
		{
			name:     "flat clamped to subtotal",
			d:        domain.Discount{Type: domain.DiscountTypeFlat, Value: dec("200")},
			subtotal: "150",
			want:     "150",
		},
		{
			name:     "zero subtotal gives zero",
			d:        domain.Discount{Type: domain.DiscountTypeFlat, Value: dec("10")},
			subtotal: "0",
			want:     "0",
		},
		{
			name:     "negative subtotal gives zero",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("10")},
			subtotal: "-5",
			want:     "0",
		},
		{
			name:     "non-positive value gives zero",
			d:        domain.Discount{Type: domain.DiscountTypeFlat, Value: dec("0")},
			subtotal: "100",
			want:     "0",
		},
		{
			name:     "percentage rounds half up to cents",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("15")},
			subtotal: "19.99",
			want:     "3.00",
		},
		{
			name:     "half cent rounds up",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("10")},
			subtotal: "10.05",
			want:     "1.01",
		},
		{
			name:     "maxDiscount zero is ignored",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("10"), MaxDiscount: decPtr("0")},
			subtotal: "100",
			want:     "10",
		},
		{
			name:     "maxDiscount ignored below cap",
			d:        domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("5"), MaxDiscount: decPtr("50")},
			subtotal: "100",
			want:     "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := discount.CalculateAmount(tt.d, dec(tt.subtotal))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}
