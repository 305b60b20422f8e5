package favorite

import (
	"context"

	"botshop/internal/domain"
)

// Service is the favorites ledger: a per-user set of products, one entry per
// (user, product) pair.
type Service struct {
	users     userRepo
	catalog   catalogRepo
	favorites favoriteRepo
}

type userRepo interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
}

type catalogRepo interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type favoriteRepo interface {
	Add(ctx context.Context, userID, productID int64) (*domain.Favorite, bool, error)
	ListByUserShop(ctx context.Context, userID int64, shopCode string) ([]domain.Favorite, error)
	Delete(ctx context.Context, favoriteID, userID int64) error
}

func New(users userRepo, catalog catalogRepo, favorites favoriteRepo) *Service {
	return &Service{users: users, catalog: catalog, favorites: favorites}
}

// Add favorites a product for the user. Re-favoriting an already favorited
// product succeeds and reports created=false.
func (s *Service) Add(ctx context.Context, telegramID string, productID int64) (bool, error) {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return false, err
	}
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return false, err
	}
	_, created, err := s.favorites.Add(ctx, user.ID, productID)
	return created, err
}

// List returns the user's favorites within one shop, each with its product
// snapshot.
func (s *Service) List(ctx context.Context, telegramID, shopCode string) ([]domain.Favorite, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return s.favorites.ListByUserShop(ctx, user.ID, shopCode)
}

// Delete removes one favorite by id; another user's favorite reads as absent.
func (s *Service) Delete(ctx context.Context, telegramID string, favoriteID int64) error {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	return s.favorites.Delete(ctx, favoriteID, user.ID)
}
