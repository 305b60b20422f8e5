package favorite

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

func (r *postgresRepo) Add(ctx context.Context, userID, productID int64) (*domain.Favorite, bool, error) {
	const insertQ = `
INSERT INTO favorites (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO NOTHING
RETURNING id, user_id, product_id, created_at
`
	var f domain.Favorite
	err := r.pool.QueryRow(ctx, insertQ, userID, productID).Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err == nil {
		return &f, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// conflict: the pair already exists, read it back
	const selectQ = `
SELECT id, user_id, product_id, created_at
FROM favorites
WHERE user_id = $1 AND product_id = $2
`
	err = r.pool.QueryRow(ctx, selectQ, userID, productID).Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	return &f, false, nil
}

func (r *postgresRepo) ListByUserShop(ctx context.Context, userID int64, shopCode string) ([]domain.Favorite, error) {
	const q = `
SELECT f.id, f.user_id, f.product_id, f.created_at,
       p.id, p.shop_id, s.code, p.name, p.description, p.prepayment_amount, p.created_at, p.updated_at
FROM favorites f
JOIN products p ON p.id = f.product_id
JOIN shops s ON s.id = p.shop_id
WHERE f.user_id = $1 AND s.code = $2
ORDER BY f.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID, shopCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		var p domain.Product
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt,
			&p.ID, &p.ShopID, &p.ShopCode, &p.Name, &p.Description, &p.PrepaymentAmount, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		f.Product = &p
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Delete(ctx context.Context, favoriteID, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, favoriteID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
