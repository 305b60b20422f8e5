package basket

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

func (r *postgresRepo) Upsert(ctx context.Context, userID, shopID, variantID int64, quantity int) (*domain.BasketLine, error) {
	const q = `
INSERT INTO basket_lines (user_id, shop_id, product_variant_id, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_variant_id) DO UPDATE SET
    quantity = EXCLUDED.quantity,
    updated_at = now()
RETURNING id, user_id, shop_id, product_variant_id, quantity, created_at, updated_at
`
	var line domain.BasketLine
	err := r.pool.QueryRow(ctx, q, userID, shopID, variantID, quantity).Scan(
		&line.ID, &line.UserID, &line.ShopID, &line.VariantID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) GetByVariant(ctx context.Context, userID, variantID int64) (*domain.BasketLine, error) {
	const q = `
SELECT id, user_id, shop_id, product_variant_id, quantity, created_at, updated_at
FROM basket_lines
WHERE user_id = $1 AND product_variant_id = $2
`
	var line domain.BasketLine
	err := r.pool.QueryRow(ctx, q, userID, variantID).Scan(
		&line.ID, &line.UserID, &line.ShopID, &line.VariantID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLineNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) SetQuantity(ctx context.Context, lineID int64, quantity int) error {
	const q = `UPDATE basket_lines SET quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, q, lineID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *postgresRepo) ListByUserShop(ctx context.Context, userID int64, shopCode string) ([]domain.BasketLine, error) {
	const q = `
SELECT b.id, b.user_id, b.shop_id, b.product_variant_id, b.quantity, b.created_at, b.updated_at,
       v.id, v.product_id, p.name, v.color, v.size, v.volume, v.taste,
       v.price, v.discount_price, v.discount_percent, v.stock, v.is_active
FROM basket_lines b
JOIN shops s ON s.id = b.shop_id
JOIN product_variants v ON v.id = b.product_variant_id
JOIN products p ON p.id = v.product_id
WHERE b.user_id = $1 AND s.code = $2
ORDER BY b.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID, shopCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BasketLine
	for rows.Next() {
		var line domain.BasketLine
		var v domain.ProductVariant
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.ShopID, &line.VariantID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt,
			&v.ID, &v.ProductID, &v.ProductName, &v.Color, &v.Size, &v.Volume, &v.Taste,
			&v.Price, &v.DiscountPrice, &v.DiscountPercent, &v.Stock, &v.IsActive,
		); err != nil {
			return nil, err
		}
		line.Variant = &v
		result = append(result, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Delete(ctx context.Context, lineID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM basket_lines WHERE id = $1`, lineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteByVariant(ctx context.Context, userID, variantID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM basket_lines WHERE user_id = $1 AND product_variant_id = $2`, userID, variantID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
