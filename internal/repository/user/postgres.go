package user

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

const userColumns = `id, telegram_id, telegram_username, phone_number, first_name, last_name, role, language, active_shop_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.TelegramUsername,
		&u.PhoneNumber,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.Language,
		&u.ActiveShopID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, q, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Printf("user repo: get telegram_id=%s error=%v", telegramID, err)
		return nil, err
	}

	const addrQ = `
SELECT id, user_id, full_address, created_at
FROM user_addresses
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, addrQ, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.UserAddress
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullAddress, &a.CreatedAt); err != nil {
			return nil, err
		}
		u.Addresses = append(u.Addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) ExistsTelegramID(ctx context.Context, telegramID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE telegram_id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, telegramID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	const q = `
INSERT INTO users (phone_number, telegram_id, telegram_username, first_name, last_name, language)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (phone_number) DO UPDATE SET
    telegram_id = EXCLUDED.telegram_id,
    telegram_username = EXCLUDED.telegram_username,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    language = EXCLUDED.language,
    updated_at = now()
RETURNING ` + userColumns + `
`
	lang := in.Language
	if lang == "" {
		lang = domain.LangUz
	}
	u, err := scanUser(r.pool.QueryRow(ctx, q, in.PhoneNumber, in.TelegramID, in.TelegramUsername, in.FirstName, in.LastName, lang))
	if err != nil {
		r.logger.Printf("user repo: register phone=%s error=%v", in.PhoneNumber, err)
		return nil, err
	}
	r.logger.Printf("user repo: registered id=%d telegram_id=%s", u.ID, u.TelegramID)
	return u, nil
}

func (r *postgresRepo) Update(ctx context.Context, userID int64, in UpdateInput) (*domain.User, error) {
	const q = `
UPDATE users SET
    phone_number = COALESCE($2, phone_number),
    telegram_username = COALESCE($3, telegram_username),
    first_name = COALESCE($4, first_name),
    last_name = COALESCE($5, last_name),
    language = COALESCE($6, language),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns + `
`
	u, err := scanUser(r.pool.QueryRow(ctx, q, userID, in.PhoneNumber, in.TelegramUsername, in.FirstName, in.LastName, in.Language))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Printf("user repo: update id=%d error=%v", userID, err)
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) SetActiveShop(ctx context.Context, userID, shopID int64) error {
	const q = `UPDATE users SET active_shop_id = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, q, userID, shopID)
	if err != nil {
		r.logger.Printf("user repo: set active shop user_id=%d shop_id=%d error=%v", userID, shopID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepo) AddAddress(ctx context.Context, userID int64, fullAddress string) (*domain.UserAddress, error) {
	const q = `
INSERT INTO user_addresses (user_id, full_address)
VALUES ($1, $2)
RETURNING id, user_id, full_address, created_at
`
	var a domain.UserAddress
	if err := r.pool.QueryRow(ctx, q, userID, fullAddress).Scan(&a.ID, &a.UserID, &a.FullAddress, &a.CreatedAt); err != nil {
		r.logger.Printf("user repo: add address user_id=%d error=%v", userID, err)
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) GetAddress(ctx context.Context, addressID, userID int64) (*domain.UserAddress, error) {
	const q = `
SELECT id, user_id, full_address, created_at
FROM user_addresses
WHERE id = $1 AND user_id = $2
`
	var a domain.UserAddress
	err := r.pool.QueryRow(ctx, q, addressID, userID).Scan(&a.ID, &a.UserID, &a.FullAddress, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) DeleteAddress(ctx context.Context, addressID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_addresses WHERE id = $1`, addressID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}
