package user

import (
	"context"

	"botshop/internal/domain"
)

// RegisterInput carries the fields the bot sends on first contact. Users are
// keyed by phone number; telegram fields are refreshed on re-registration.
type RegisterInput struct {
	PhoneNumber      string
	TelegramID       string
	TelegramUsername *string
	FirstName        *string
	LastName         *string
	Language         string
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	PhoneNumber      *string
	TelegramUsername *string
	FirstName        *string
	LastName         *string
	Language         *string
}

type Repository interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsTelegramID(ctx context.Context, telegramID string) (bool, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Update(ctx context.Context, userID int64, in UpdateInput) (*domain.User, error)
	SetActiveShop(ctx context.Context, userID, shopID int64) error

	AddAddress(ctx context.Context, userID int64, fullAddress string) (*domain.UserAddress, error)
	GetAddress(ctx context.Context, addressID, userID int64) (*domain.UserAddress, error)
	DeleteAddress(ctx context.Context, addressID int64) error
}
