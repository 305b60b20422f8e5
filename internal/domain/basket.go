package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasketLine is one (user, product variant, quantity) record prior to order
// placement. A user holds at most one line per variant; re-adding the same
// variant replaces the quantity instead of duplicating the line.
type BasketLine struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	ShopID    int64     `json:"-"`
	VariantID int64     `json:"product_variant_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Variant is the live catalog snapshot resolved on reads. Basket totals
	// are always computed from the current variant price; nothing is frozen
	// until order assembly.
	Variant *ProductVariant `json:"product_variant,omitempty"`
}

// LineTotal is quantity times the variant's current effective price.
func (l BasketLine) LineTotal() decimal.Decimal {
	if l.Variant == nil {
		return decimal.Zero
	}
	return l.Variant.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}
