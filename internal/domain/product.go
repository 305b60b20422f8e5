package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID               int64            `json:"id"`
	ShopID           int64            `json:"-"`
	ShopCode         string           `json:"shop_code,omitempty"`
	Name             string           `json:"name"`
	Description      *string          `json:"description,omitempty"`
	PrepaymentAmount *decimal.Decimal `json:"prepayment_amount,omitempty"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ProductVariant is one purchasable configuration of a product. The
// (product, color, size, volume, taste) combination is unique.
type ProductVariant struct {
	ID              int64            `json:"id"`
	ProductID       int64            `json:"product_id"`
	ProductName     string           `json:"product_name,omitempty"`
	Color           *string          `json:"color,omitempty"`
	Size            *string          `json:"size,omitempty"`
	Volume          *string          `json:"volume,omitempty"`
	Taste           *string          `json:"taste,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPrice   *decimal.Decimal `json:"discount_price,omitempty"`
	DiscountPercent *int             `json:"discount_percent,omitempty"`
	Stock           int              `json:"stock"`
	IsActive        bool             `json:"is_active"`
}

var hundred = decimal.NewFromInt(100)

// ApplyDiscountDerivation fills whichever of discount price / discount percent
// was omitted from the other. When both are supplied they are trusted as given.
// Runs on every persist of a variant, not only on creation.
func (v *ProductVariant) ApplyDiscountDerivation() {
	switch {
	case v.DiscountPrice == nil && v.DiscountPercent != nil:
		pct := decimal.NewFromInt(int64(*v.DiscountPercent))
		price := v.Price.Mul(decimal.NewFromInt(1).Sub(pct.Div(hundred))).Round(2)
		v.DiscountPrice = &price
	case v.DiscountPrice != nil && v.DiscountPercent == nil:
		if v.Price.IsZero() {
			return
		}
		pct := hundred.Sub(v.DiscountPrice.Div(v.Price).Mul(hundred)).Round(0)
		p := int(pct.IntPart())
		v.DiscountPercent = &p
	}
}

// HasDiscount reports whether a discount price is set and strictly below the
// list price.
func (v ProductVariant) HasDiscount() bool {
	return v.DiscountPrice != nil && v.DiscountPrice.LessThan(v.Price)
}

// EffectivePrice is the unit price a buyer pays right now.
func (v ProductVariant) EffectivePrice() decimal.Decimal {
	if v.HasDiscount() {
		return *v.DiscountPrice
	}
	return v.Price
}
