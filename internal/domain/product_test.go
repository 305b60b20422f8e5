package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApplyDiscountDerivationFromPercent(t *testing.T) {
	pct := 20
	v := ProductVariant{Price: dec("1000"), DiscountPercent: &pct}

	v.ApplyDiscountDerivation()

	if v.DiscountPrice == nil {
		t.Fatalf("expected discount price to be derived")
	}
	if !v.DiscountPrice.Equal(dec("800")) {
		t.Errorf("discount price = %s, want 800", v.DiscountPrice)
	}
}

func TestApplyDiscountDerivationFromPrice(t *testing.T) {
	dp := dec("750")
	v := ProductVariant{Price: dec("1000"), DiscountPrice: &dp}

	v.ApplyDiscountDerivation()

	if v.DiscountPercent == nil {
		t.Fatalf("expected discount percent to be derived")
	}
	if *v.DiscountPercent != 25 {
		t.Errorf("discount percent = %d, want 25", *v.DiscountPercent)
	}
}

func TestApplyDiscountDerivationBothGiven(t *testing.T) {
	dp := dec("500")
	pct := 10 // inconsistent with the price on purpose
	v := ProductVariant{Price: dec("1000"), DiscountPrice: &dp, DiscountPercent: &pct}

	v.ApplyDiscountDerivation()

	if !v.DiscountPrice.Equal(dec("500")) || *v.DiscountPercent != 10 {
		t.Errorf("both-given values must be kept as supplied, got price=%s percent=%d", v.DiscountPrice, *v.DiscountPercent)
	}
}

func TestApplyDiscountDerivationZeroPrice(t *testing.T) {
	dp := dec("10")
	v := ProductVariant{Price: decimal.Zero, DiscountPrice: &dp}

	v.ApplyDiscountDerivation()

	if v.DiscountPercent != nil {
		t.Errorf("no percent should be derived from a zero price, got %d", *v.DiscountPercent)
	}
}

func TestApplyDiscountDerivationNeitherGiven(t *testing.T) {
	v := ProductVariant{Price: dec("1000")}

	v.ApplyDiscountDerivation()

	if v.DiscountPrice != nil || v.DiscountPercent != nil {
		t.Errorf("variant without discount inputs must stay undiscounted")
	}
}

func TestEffectivePrice(t *testing.T) {
	equal := dec("1000")
	below := dec("800")
	above := dec("1200")

	cases := []struct {
		name        string
		variant     ProductVariant
		hasDiscount bool
		want        decimal.Decimal
	}{
		{"no discount", ProductVariant{Price: dec("1000")}, false, dec("1000")},
		{"discount below price", ProductVariant{Price: dec("1000"), DiscountPrice: &below}, true, dec("800")},
		{"discount equal to price", ProductVariant{Price: dec("1000"), DiscountPrice: &equal}, false, dec("1000")},
		{"discount above price", ProductVariant{Price: dec("1000"), DiscountPrice: &above}, false, dec("1000")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.variant.HasDiscount(); got != tc.hasDiscount {
				t.Errorf("HasDiscount() = %v, want %v", got, tc.hasDiscount)
			}
			if got := tc.variant.EffectivePrice(); !got.Equal(tc.want) {
				t.Errorf("EffectivePrice() = %s, want %s", got, tc.want)
			}
		})
	}
}
