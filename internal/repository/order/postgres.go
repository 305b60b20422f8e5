package order

import (
	"context"
	"errors"
	"io"
	"log"

	"botshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

const variantJoin = `
SELECT v.id, v.product_id, p.name, v.color, v.size, v.volume, v.taste,
       v.price, v.discount_price, v.discount_percent, v.stock, v.is_active,
       s.id, s.owner_id, s.name, s.code, s.phone_number, s.description, s.telegram_group,
       s.is_active, s.subscription_start, s.subscription_end, s.created_at
FROM product_variants v
JOIN products p ON p.id = v.product_id
JOIN shops s ON s.id = p.shop_id
`

func scanVariantShop(row pgx.Row) (*domain.ProductVariant, *domain.Shop, error) {
	var v domain.ProductVariant
	var s domain.Shop
	err := row.Scan(
		&v.ID, &v.ProductID, &v.ProductName, &v.Color, &v.Size, &v.Volume, &v.Taste,
		&v.Price, &v.DiscountPrice, &v.DiscountPercent, &v.Stock, &v.IsActive,
		&s.ID, &s.OwnerID, &s.Name, &s.Code, &s.PhoneNumber, &s.Description, &s.TelegramGroup,
		&s.IsActive, &s.SubscriptionStart, &s.SubscriptionEnd, &s.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return &v, &s, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ord domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, address, status, total_price, comment)
VALUES ($1, $2, 'new', 0, $3)
RETURNING id, user_id, address, status, total_price, comment, created_at
`, in.UserID, in.Address, in.Comment).Scan(
		&ord.ID, &ord.UserID, &ord.Address, &ord.Status, &ord.TotalPrice, &ord.Comment, &ord.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var shop *domain.Shop
	total := decimal.Zero
	for _, sel := range in.Lines {
		var variant *domain.ProductVariant
		var lineShop *domain.Shop
		quantity := sel.Quantity

		if sel.BasketLineID != nil {
			var variantID int64
			err := tx.QueryRow(ctx, `
SELECT product_variant_id, quantity FROM basket_lines WHERE id = $1 AND user_id = $2
`, *sel.BasketLineID, in.UserID).Scan(&variantID, &quantity)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, domain.ErrLineNotFound
				}
				return nil, err
			}
			variant, lineShop, err = scanVariantShop(tx.QueryRow(ctx, variantJoin+`WHERE v.id = $1`, variantID))
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, domain.ErrVariantNotFound
				}
				return nil, err
			}
			if _, err := tx.Exec(ctx, `DELETE FROM basket_lines WHERE id = $1`, *sel.BasketLineID); err != nil {
				return nil, err
			}
		} else {
			variant, lineShop, err = scanVariantShop(tx.QueryRow(ctx, variantJoin+`WHERE v.id = $1`, *sel.VariantID))
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, domain.ErrVariantNotFound
				}
				return nil, err
			}
		}

		if !variant.IsActive || !lineShop.IsActive {
			return nil, domain.ErrVariantInactive
		}
		shop = lineShop

		item := domain.OrderItem{OrderID: ord.ID, Quantity: quantity}
		variantID := variant.ID
		item.VariantID = &variantID
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_variant_id, quantity)
VALUES ($1, $2, $3)
RETURNING id
`, ord.ID, variant.ID, quantity).Scan(&item.ID); err != nil {
			return nil, err
		}
		item.Variant = variant
		ord.Items = append(ord.Items, item)

		total = total.Add(variant.EffectivePrice().Mul(decimal.NewFromInt(int64(quantity))))
	}

	total = total.Round(2)
	if _, err := tx.Exec(ctx, `UPDATE orders SET total_price = $2 WHERE id = $1`, ord.ID, total); err != nil {
		return nil, err
	}
	ord.TotalPrice = total

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Printf("order repo: created id=%d user_id=%d items=%d total=%s", ord.ID, ord.UserID, len(ord.Items), total)
	return &CreateResult{Order: ord, Shop: *shop}, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT id, user_id, address, status, total_price, comment, created_at
FROM orders
WHERE id = $1
`
	var ord domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&ord.ID, &ord.UserID, &ord.Address, &ord.Status, &ord.TotalPrice, &ord.Comment, &ord.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.Items = items[ord.ID]
	return &ord, nil
}

func (r *postgresRepo) ListByUserShop(ctx context.Context, userID, shopID int64) ([]domain.Order, error) {
	const q = `
SELECT DISTINCT o.id, o.user_id, o.address, o.status, o.total_price, o.comment, o.created_at
FROM orders o
JOIN order_items i ON i.order_id = o.id
JOIN product_variants v ON v.id = i.product_variant_id
JOIN products p ON p.id = v.product_id
WHERE o.user_id = $1 AND p.shop_id = $2
ORDER BY o.created_at DESC
`
	return r.listOrders(ctx, q, userID, shopID)
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID int64) ([]domain.Order, error) {
	const q = `
SELECT DISTINCT o.id, o.user_id, o.address, o.status, o.total_price, o.comment, o.created_at
FROM orders o
JOIN order_items i ON i.order_id = o.id
JOIN product_variants v ON v.id = i.product_variant_id
JOIN products p ON p.id = v.product_id
WHERE p.shop_id = $1
ORDER BY o.created_at DESC
`
	return r.listOrders(ctx, q, shopID)
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		var ord domain.Order
		if err := rows.Scan(&ord.ID, &ord.UserID, &ord.Address, &ord.Status, &ord.TotalPrice, &ord.Comment, &ord.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	const q = `
SELECT i.id, i.order_id, i.product_variant_id, i.quantity,
       v.id, v.product_id, p.name, v.color, v.size, v.volume, v.taste,
       v.price, v.discount_price, v.discount_percent, v.stock, v.is_active
FROM order_items i
LEFT JOIN product_variants v ON v.id = i.product_variant_id
LEFT JOIN products p ON p.id = v.product_id
WHERE i.order_id = ANY($1)
ORDER BY i.id ASC
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		var vID, vProductID *int64
		var vName, vColor, vSize, vVolume, vTaste *string
		var vPrice, vDiscountPrice *decimal.Decimal
		var vDiscountPercent, vStock *int
		var vActive *bool
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.VariantID, &item.Quantity,
			&vID, &vProductID, &vName, &vColor, &vSize, &vVolume, &vTaste,
			&vPrice, &vDiscountPrice, &vDiscountPercent, &vStock, &vActive,
		); err != nil {
			return nil, err
		}
		// Variant columns are NULL when the variant was deleted after the
		// order; the item row itself is preserved.
		if vID != nil {
			v := domain.ProductVariant{
				ID:              *vID,
				ProductID:       *vProductID,
				Color:           vColor,
				Size:            vSize,
				Volume:          vVolume,
				Taste:           vTaste,
				Price:           *vPrice,
				DiscountPrice:   vDiscountPrice,
				DiscountPercent: vDiscountPercent,
				Stock:           *vStock,
				IsActive:        *vActive,
			}
			if vName != nil {
				v.ProductName = *vName
			}
			item.Variant = &v
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		r.logger.Printf("order repo: update status id=%d status=%s error=%v", orderID, status, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
