package domain

import "time"

type Shop struct {
	ID                int64      `json:"id"`
	OwnerID           int64      `json:"owner_id"`
	Name              string     `json:"name"`
	Code              string     `json:"code"`
	PhoneNumber       *string    `json:"phone_number,omitempty"`
	Description       *string    `json:"description,omitempty"`
	TelegramGroup     *string    `json:"telegram_group,omitempty"`
	IsActive          bool       `json:"is_active"`
	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// SubscriptionActive reports whether the paid subscription window is open at now.
// A shop without a subscription end date is treated as expired.
func (s Shop) SubscriptionActive(now time.Time) bool {
	if s.SubscriptionEnd == nil {
		return false
	}
	return s.SubscriptionEnd.After(now)
}

// Open reports whether the shop can take basket and order traffic.
func (s Shop) Open(now time.Time) bool {
	return s.IsActive && s.SubscriptionActive(now)
}
