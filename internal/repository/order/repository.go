package order

import (
	"context"

	"botshop/internal/domain"
)

// LineSelector references either an existing basket line (consumed on
// assembly) or an explicit variant + quantity pair. Exactly one of
// BasketLineID / VariantID is set.
type LineSelector struct {
	BasketLineID *int64
	VariantID    *int64
	Quantity     int
}

type CreateInput struct {
	UserID  int64
	Address string
	Comment *string
	Lines   []LineSelector
}

// CreateResult carries the assembled order plus the shop that received it
// (resolved from the order's items, needed for the shop-facing notification).
type CreateResult struct {
	Order domain.Order
	Shop  domain.Shop
}

type Repository interface {
	// Create assembles an order in a single transaction: order row, one item
	// snapshot per selector in input order, consumed basket lines deleted,
	// server-computed total frozen. Any failure rolls the whole thing back.
	Create(ctx context.Context, in CreateInput) (*CreateResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUserShop(ctx context.Context, userID, shopID int64) ([]domain.Order, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}
