package basket

import (
	"context"
	"errors"

	"botshop/internal/domain"
	"github.com/shopspring/decimal"
)

// Service is the basket ledger: a mutable per-(user, shop) set of variant
// lines. No price is frozen here; totals are computed live from the current
// variant price on every read.
type Service struct {
	users   userRepo
	catalog catalogRepo
	baskets basketRepo
}

type userRepo interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
}

type catalogRepo interface {
	GetVariantShop(ctx context.Context, variantID int64) (*domain.Shop, error)
}

type basketRepo interface {
	Upsert(ctx context.Context, userID, shopID, variantID int64, quantity int) (*domain.BasketLine, error)
	GetByVariant(ctx context.Context, userID, variantID int64) (*domain.BasketLine, error)
	SetQuantity(ctx context.Context, lineID int64, quantity int) error
	ListByUserShop(ctx context.Context, userID int64, shopCode string) ([]domain.BasketLine, error)
	Delete(ctx context.Context, lineID int64) error
	DeleteByVariant(ctx context.Context, userID, variantID int64) (bool, error)
}

func New(users userRepo, catalog catalogRepo, baskets basketRepo) *Service {
	return &Service{users: users, catalog: catalog, baskets: baskets}
}

// UpsertLine sets the user's quantity for a variant. Quantity zero removes the
// line (a no-op when absent); a positive quantity replaces any existing value
// rather than adding to it.
func (s *Service) UpsertLine(ctx context.Context, telegramID string, variantID int64, quantity int) (*domain.BasketLine, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	shop, err := s.catalog.GetVariantShop(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !shop.IsActive {
		return nil, domain.ErrInactiveShop
	}

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		if _, err := s.baskets.DeleteByVariant(ctx, user.ID, variantID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.baskets.Upsert(ctx, user.ID, shop.ID, variantID, quantity)
}

// IncrementLine applies the step-wise basket buttons: delta is +1 or -1.
// Adding to a missing line creates it at quantity 1; removing past zero
// deletes the line. Removing a missing line fails.
func (s *Service) IncrementLine(ctx context.Context, telegramID string, variantID int64, delta int) (int, error) {
	if delta != 1 && delta != -1 {
		return 0, domain.ErrInvalidQuantity
	}

	shop, err := s.catalog.GetVariantShop(ctx, variantID)
	if err != nil {
		return 0, err
	}
	if !shop.IsActive {
		return 0, domain.ErrInactiveShop
	}

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return 0, err
	}

	line, err := s.baskets.GetByVariant(ctx, user.ID, variantID)
	if err != nil {
		if !errors.Is(err, domain.ErrLineNotFound) {
			return 0, err
		}
		if delta < 0 {
			return 0, domain.ErrLineNotFound
		}
		created, err := s.baskets.Upsert(ctx, user.ID, shop.ID, variantID, 1)
		if err != nil {
			return 0, err
		}
		return created.Quantity, nil
	}

	next := line.Quantity + delta
	if next <= 0 {
		if err := s.baskets.Delete(ctx, line.ID); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err := s.baskets.SetQuantity(ctx, line.ID, next); err != nil {
		return 0, err
	}
	return next, nil
}

// Summary is the user's basket for one shop with a live total.
type Summary struct {
	Lines []domain.BasketLine `json:"lines"`
	Total decimal.Decimal     `json:"total"`
}

func (s *Service) ListLines(ctx context.Context, telegramID, shopCode string) (*Summary, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	lines, err := s.baskets.ListByUserShop(ctx, user.ID, shopCode)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return &Summary{Lines: lines, Total: total.Round(2)}, nil
}

func (s *Service) DeleteLine(ctx context.Context, lineID int64) error {
	return s.baskets.Delete(ctx, lineID)
}
