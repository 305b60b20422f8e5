package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts a demo shop with a small catalog so the API is usable right
// after migrations. Safe to run repeatedly: everything is keyed on the demo
// shop code.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	var ownerID int64
	err := pool.QueryRow(ctx, `
INSERT INTO users (phone_number, telegram_id, first_name, language, role)
VALUES ('+998900000000', '100000001', 'Demo', 'uz', 'admin')
ON CONFLICT (phone_number) DO UPDATE SET updated_at = now()
RETURNING id
`).Scan(&ownerID)
	if err != nil {
		return fmt.Errorf("seed owner: %w", err)
	}

	subEnd := time.Now().AddDate(1, 0, 0)
	var shopID int64
	err = pool.QueryRow(ctx, `
INSERT INTO shops (owner_id, name, code, is_active, subscription_start, subscription_end, telegram_group)
VALUES ($1, 'Demo Shop', 'demo-shop', TRUE, now(), $2, '-1000000000001')
ON CONFLICT (code) DO UPDATE SET subscription_end = EXCLUDED.subscription_end
RETURNING id
`, ownerID, subEnd).Scan(&shopID)
	if err != nil {
		return fmt.Errorf("seed shop: %w", err)
	}

	var productID int64
	err = pool.QueryRow(ctx, `
INSERT INTO products (shop_id, name, description)
SELECT $1, 'Classic T-Shirt', 'Plain cotton tee'
WHERE NOT EXISTS (SELECT 1 FROM products WHERE shop_id = $1 AND name = 'Classic T-Shirt')
RETURNING id
`, shopID).Scan(&productID)
	if err != nil {
		// Already seeded.
		logger.Printf("seed: catalog already present for shop_id=%d", shopID)
		return nil
	}

	variants := []struct {
		color string
		size  string
		price string
	}{
		{"black", "M", "120000.00"},
		{"black", "L", "120000.00"},
		{"white", "M", "110000.00"},
	}
	for _, v := range variants {
		if _, err := pool.Exec(ctx, `
INSERT INTO product_variants (product_id, color, size, price, stock, is_active)
VALUES ($1, $2, $3, $4::numeric, 50, TRUE)
ON CONFLICT DO NOTHING
`, productID, v.color, v.size, v.price); err != nil {
			return fmt.Errorf("seed variant: %w", err)
		}
	}

	logger.Printf("seed: shop_id=%d product_id=%d variants=%d", shopID, productID, len(variants))
	return nil
}
