package basket

import (
	"context"

	"botshop/internal/domain"
)

type Repository interface {
	// Upsert creates the (user, variant) line or replaces its quantity.
	Upsert(ctx context.Context, userID, shopID, variantID int64, quantity int) (*domain.BasketLine, error)
	// GetByVariant finds the user's line for one variant.
	GetByVariant(ctx context.Context, userID, variantID int64) (*domain.BasketLine, error)
	SetQuantity(ctx context.Context, lineID int64, quantity int) error
	// ListByUserShop returns the user's lines for one shop, each with its live
	// variant snapshot.
	ListByUserShop(ctx context.Context, userID int64, shopCode string) ([]domain.BasketLine, error)
	Delete(ctx context.Context, lineID int64) error
	// DeleteByVariant removes the user's line for a variant; absent lines are
	// a no-op and report found=false.
	DeleteByVariant(ctx context.Context, userID, variantID int64) (found bool, err error)
}
