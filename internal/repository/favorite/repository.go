package favorite

import (
	"context"

	"botshop/internal/domain"
)

// Repository stores user favorites. Adding is get-or-create on the
// (user, product) pair.
type Repository interface {
	// Add returns the favorite and whether it was newly created.
	Add(ctx context.Context, userID, productID int64) (*domain.Favorite, bool, error)
	ListByUserShop(ctx context.Context, userID int64, shopCode string) ([]domain.Favorite, error)
	// Delete removes the favorite only when it belongs to userID.
	Delete(ctx context.Context, favoriteID, userID int64) error
}
