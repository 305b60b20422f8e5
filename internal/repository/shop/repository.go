package shop

import (
	"context"

	"botshop/internal/domain"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*domain.Shop, error)
}
