package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Orders move stepwise
// new -> confirmed -> shipped -> delivered; cancelled is reachable from any
// non-terminal state. delivered and cancelled are terminal.
type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status value against the known set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusNew, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is a valid step.
// Setting the same status again is allowed and treated as a no-op by callers.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusNew:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	default:
		return false
	}
}

var statusLabels = map[OrderStatus]map[string]string{
	StatusNew:       {LangUz: "Yangi", LangRu: "Новый"},
	StatusConfirmed: {LangUz: "Tasdiqlandi", LangRu: "Подтвержден"},
	StatusShipped:   {LangUz: "Jo‘natildi", LangRu: "Отправлен"},
	StatusDelivered: {LangUz: "Yetkazildi", LangRu: "Доставлен"},
	StatusCancelled: {LangUz: "Bekor qilindi", LangRu: "Отменен"},
}

// Label returns the localized display name for s, falling back to the raw
// value for unknown locales or statuses.
func (s OrderStatus) Label(locale string) string {
	if byLocale, ok := statusLabels[s]; ok {
		if label, ok := byLocale[locale]; ok {
			return label
		}
	}
	return string(s)
}

// OrderStatuses lists all known statuses in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusNew, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}
}

// Order is an immutable purchase snapshot. Only status changes after creation;
// total_price is frozen by the assembler when the creating transaction commits.
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"-"`
	Address    string          `json:"address"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Comment    *string         `json:"comment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItem     `json:"items,omitempty"`
}

// OrderItem is one frozen line of an order. The variant reference is nullable
// so the row survives later deletion of the variant.
type OrderItem struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"-"`
	VariantID *int64 `json:"product_variant_id,omitempty"`
	Quantity  int    `json:"quantity"`

	Variant *ProductVariant `json:"product_variant,omitempty"`
}
