package domain

import "time"

const (
	RoleOrdinary = "ordinary_user"
	RoleAdmin    = "admin"

	LangUz = "uz"
	LangRu = "ru"
)

type User struct {
	ID               int64         `json:"id"`
	TelegramID       string        `json:"telegram_id"`
	TelegramUsername *string       `json:"telegram_username,omitempty"`
	PhoneNumber      string        `json:"phone_number"`
	FirstName        *string       `json:"first_name,omitempty"`
	LastName         *string       `json:"last_name,omitempty"`
	Role             string        `json:"role"`
	Language         string        `json:"language"`
	ActiveShopID     *int64        `json:"active_shop_id,omitempty"`
	Addresses        []UserAddress `json:"addresses,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// FullName joins first and last name, dropping the gap when either is empty.
func (u User) FullName() string {
	first := ""
	if u.FirstName != nil {
		first = *u.FirstName
	}
	last := ""
	if u.LastName != nil {
		last = *u.LastName
	}
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// Locale returns the user's notification language, defaulting to uz.
func (u User) Locale() string {
	if u.Language == LangRu {
		return LangRu
	}
	return LangUz
}

type UserAddress struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	FullAddress string    `json:"full_address"`
	CreatedAt   time.Time `json:"created_at"`
}
