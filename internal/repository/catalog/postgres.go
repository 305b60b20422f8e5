package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"botshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const variantColumns = `v.id, v.product_id, p.name, v.color, v.size, v.volume, v.taste, v.price, v.discount_price, v.discount_percent, v.stock, v.is_active`

func scanVariant(row pgx.Row) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := row.Scan(
		&v.ID,
		&v.ProductID,
		&v.ProductName,
		&v.Color,
		&v.Size,
		&v.Volume,
		&v.Taste,
		&v.Price,
		&v.DiscountPrice,
		&v.DiscountPercent,
		&v.Stock,
		&v.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, shopCode string) ([]domain.Product, error) {
	const q = `
SELECT p.id, p.shop_id, s.code, p.name, p.description, p.prepayment_amount, p.created_at, p.updated_at
FROM products p
JOIN shops s ON s.id = p.shop_id
WHERE s.code = $1
ORDER BY p.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, shopCode)
	if err != nil {
		r.logger.Printf("catalog repo: list products shop=%s error=%v", shopCode, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.ShopCode, &p.Name, &p.Description, &p.PrepaymentAmount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT p.id, p.shop_id, s.code, p.name, p.description, p.prepayment_amount, p.created_at, p.updated_at
FROM products p
JOIN shops s ON s.id = p.shop_id
WHERE p.id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.ShopID, &p.ShopCode, &p.Name, &p.Description, &p.PrepaymentAmount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	variants, err := r.ListVariants(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return &p, nil
}

func (r *postgresRepo) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	const q = `
INSERT INTO products (shop_id, name, description, prepayment_amount)
VALUES ($1, $2, $3, $4::numeric)
RETURNING id, shop_id, name, description, prepayment_amount, created_at, updated_at
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, in.ShopID, in.Name, in.Description, in.PrepaymentAmount).Scan(
		&p.ID, &p.ShopID, &p.Name, &p.Description, &p.PrepaymentAmount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		r.logger.Printf("catalog repo: create product shop_id=%d error=%v", in.ShopID, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error) {
	const q = `
SELECT ` + variantColumns + `
FROM product_variants v
JOIN products p ON p.id = v.product_id
WHERE v.id = $1
`
	v, err := scanVariant(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVariantNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *postgresRepo) ListVariants(ctx context.Context, productID int64) ([]domain.ProductVariant, error) {
	const q = `
SELECT ` + variantColumns + `
FROM product_variants v
JOIN products p ON p.id = v.product_id
WHERE v.product_id = $1
ORDER BY v.id ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetVariantShop(ctx context.Context, variantID int64) (*domain.Shop, error) {
	const q = `
SELECT s.id, s.owner_id, s.name, s.code, s.phone_number, s.description, s.telegram_group, s.is_active, s.subscription_start, s.subscription_end, s.created_at
FROM product_variants v
JOIN products p ON p.id = v.product_id
JOIN shops s ON s.id = p.shop_id
WHERE v.id = $1
`
	var s domain.Shop
	err := r.pool.QueryRow(ctx, q, variantID).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Code, &s.PhoneNumber, &s.Description,
		&s.TelegramGroup, &s.IsActive, &s.SubscriptionStart, &s.SubscriptionEnd, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVariantNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) CreateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error) {
	const q = `
INSERT INTO product_variants (product_id, color, size, volume, taste, price, discount_price, discount_percent, stock, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`
	err := r.pool.QueryRow(ctx, q,
		v.ProductID, v.Color, v.Size, v.Volume, v.Taste,
		v.Price, v.DiscountPrice, v.DiscountPercent, v.Stock, v.IsActive,
	).Scan(&v.ID)
	if err != nil {
		r.logger.Printf("catalog repo: create variant product_id=%d error=%v", v.ProductID, err)
		return nil, err
	}
	r.logger.Printf("catalog repo: created variant id=%d product_id=%d", v.ID, v.ProductID)
	return &v, nil
}

func (r *postgresRepo) UpdateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error) {
	const q = `
UPDATE product_variants SET
    color = $2,
    size = $3,
    volume = $4,
    taste = $5,
    price = $6,
    discount_price = $7,
    discount_percent = $8,
    stock = $9,
    is_active = $10
WHERE id = $1
RETURNING product_id
`
	err := r.pool.QueryRow(ctx, q,
		v.ID, v.Color, v.Size, v.Volume, v.Taste,
		v.Price, v.DiscountPrice, v.DiscountPercent, v.Stock, v.IsActive,
	).Scan(&v.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVariantNotFound
		}
		r.logger.Printf("catalog repo: update variant id=%d error=%v", v.ID, err)
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) DeleteVariant(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}
