package user

import (
	"context"
	"strings"
	"time"

	"botshop/internal/domain"
	userrepo "botshop/internal/repository/user"
)

type Service struct {
	users userRepo
	shops shopRepo
}

type userRepo interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
	ExistsTelegramID(ctx context.Context, telegramID string) (bool, error)
	Register(ctx context.Context, in userrepo.RegisterInput) (*domain.User, error)
	Update(ctx context.Context, userID int64, in userrepo.UpdateInput) (*domain.User, error)
	SetActiveShop(ctx context.Context, userID, shopID int64) error
	AddAddress(ctx context.Context, userID int64, fullAddress string) (*domain.UserAddress, error)
	DeleteAddress(ctx context.Context, addressID int64) error
}

type shopRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Shop, error)
}

func New(users userRepo, shops shopRepo) *Service {
	return &Service{users: users, shops: shops}
}

type RegisterInput struct {
	PhoneNumber      string
	TelegramID       string
	TelegramUsername *string
	FirstName        *string
	LastName         *string
	Language         string
}

// Register creates or refreshes the user keyed by phone number. A telegram id
// that is already registered is reported, not treated as an error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, bool, error) {
	if strings.TrimSpace(in.PhoneNumber) == "" || strings.TrimSpace(in.TelegramID) == "" {
		return nil, false, domain.ErrUserNotFound
	}

	exists, err := s.users.ExistsTelegramID(ctx, in.TelegramID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, true, nil
	}

	u, err := s.users.Register(ctx, userrepo.RegisterInput{
		PhoneNumber:      in.PhoneNumber,
		TelegramID:       in.TelegramID,
		TelegramUsername: in.TelegramUsername,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Language:         in.Language,
	})
	if err != nil {
		return nil, false, err
	}
	return u, false, nil
}

func (s *Service) Get(ctx context.Context, telegramID string) (*domain.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

type PatchInput struct {
	PhoneNumber      *string
	TelegramUsername *string
	FirstName        *string
	LastName         *string
	Language         *string
	// NewAddresses are appended; existing addresses are never touched here.
	NewAddresses []string
}

func (s *Service) Patch(ctx context.Context, telegramID string, in PatchInput) (*domain.User, error) {
	u, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, u.ID, userrepo.UpdateInput{
		PhoneNumber:      in.PhoneNumber,
		TelegramUsername: in.TelegramUsername,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Language:         in.Language,
	})
	if err != nil {
		return nil, err
	}

	for _, addr := range in.NewAddresses {
		if strings.TrimSpace(addr) == "" {
			continue
		}
		if _, err := s.users.AddAddress(ctx, u.ID, addr); err != nil {
			return nil, err
		}
	}

	return s.users.GetByTelegramID(ctx, updated.TelegramID)
}

func (s *Service) DeleteAddress(ctx context.Context, addressID int64) error {
	return s.users.DeleteAddress(ctx, addressID)
}

func (s *Service) SetActiveShop(ctx context.Context, telegramID, shopCode string) error {
	u, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	shop, err := s.shops.GetByCode(ctx, shopCode)
	if err != nil {
		return err
	}
	return s.users.SetActiveShop(ctx, u.ID, shop.ID)
}

// ShopCheck is the bot's entry gate: a shop code plus whether the shop is
// currently open for traffic (active flag and subscription window).
type ShopCheck struct {
	Code     string `json:"shop_code"`
	IsActive bool   `json:"is_active"`
}

func (s *Service) CheckShop(ctx context.Context, shopCode string) (*ShopCheck, error) {
	shop, err := s.shops.GetByCode(ctx, shopCode)
	if err != nil {
		return nil, err
	}
	return &ShopCheck{Code: shop.Code, IsActive: shop.Open(time.Now())}, nil
}
