package shop

import (
	"context"
	"errors"

	"botshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const shopColumns = `id, owner_id, name, code, phone_number, description, telegram_group, is_active, subscription_start, subscription_end, created_at`

func scanShop(row pgx.Row) (*domain.Shop, error) {
	var s domain.Shop
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Name,
		&s.Code,
		&s.PhoneNumber,
		&s.Description,
		&s.TelegramGroup,
		&s.IsActive,
		&s.SubscriptionStart,
		&s.SubscriptionEnd,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Shop, error) {
	const q = `SELECT ` + shopColumns + ` FROM shops WHERE code = $1`
	return scanShop(r.pool.QueryRow(ctx, q, code))
}
