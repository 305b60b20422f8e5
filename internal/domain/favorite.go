package domain

import "time"

// Favorite marks a product a user wants to find again. A user can favorite a
// product at most once.
type Favorite struct {
	ID        int64     `json:"favorite_id"`
	UserID    int64     `json:"-"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty"`
}
