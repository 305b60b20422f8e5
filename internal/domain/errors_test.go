package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{ErrUserNotFound, KindNotFound},
		{ErrShopNotFound, KindNotFound},
		{ErrVariantNotFound, KindNotFound},
		{ErrLineNotFound, KindNotFound},
		{ErrAddressNotFound, KindNotFound},
		{ErrOrderNotFound, KindNotFound},
		{ErrFavoriteNotFound, KindNotFound},
		{ErrForbidden, KindNotFound},

		{ErrInvalidQuantity, KindValidation},
		{ErrEmptyOrder, KindValidation},
		{ErrInvalidStatus, KindValidation},
		{ErrMalformedTotal, KindValidation},

		{ErrInvalidTransition, KindConflict},
		{ErrInactiveShop, KindConflict},
		{ErrVariantInactive, KindConflict},

		{errors.New("boom"), KindInternal},
		{fmt.Errorf("query order: %w", ErrOrderNotFound), KindNotFound},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
