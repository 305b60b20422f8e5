package order

import (
	"context"
	"io"
	"log"

	"botshop/internal/domain"
	"botshop/internal/notify"
	orderrepo "botshop/internal/repository/order"
	"github.com/shopspring/decimal"
)

// Service is the order assembler and status machine. Its mutations return the
// notification payloads they produced instead of sending them; callers
// dispatch after the transaction has committed.
type Service struct {
	users  userRepo
	shops  shopRepo
	orders orderRepo
	logger *log.Logger
}

type userRepo interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAddress(ctx context.Context, addressID, userID int64) (*domain.UserAddress, error)
}

type shopRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Shop, error)
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateInput) (*orderrepo.CreateResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUserShop(ctx context.Context, userID, shopID int64) ([]domain.Order, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

func New(users userRepo, shops shopRepo, orders orderRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{users: users, shops: shops, orders: orders, logger: logger}
}

// LineInput selects one order line: an existing basket line to consume, or an
// explicit variant with a quantity.
type LineInput struct {
	BasketLineID *int64
	VariantID    *int64
	Quantity     int
}

type CreateInput struct {
	AddressID int64
	Comment   *string
	// ClientTotal is the cart total as the client computed it. It is a display
	// hint only: the authoritative total is always recomputed server-side from
	// persisted variant prices, and a mismatch is logged, never trusted.
	ClientTotal *decimal.Decimal
	Lines       []LineInput
}

type CreateResult struct {
	Order    domain.Order
	Messages []notify.Message
}

func (s *Service) Create(ctx context.Context, telegramID string, in CreateInput) (*CreateResult, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	address, err := s.users.GetAddress(ctx, in.AddressID, user.ID)
	if err != nil {
		return nil, err
	}

	selectors := make([]orderrepo.LineSelector, 0, len(in.Lines))
	for _, line := range in.Lines {
		switch {
		case line.BasketLineID != nil:
			selectors = append(selectors, orderrepo.LineSelector{BasketLineID: line.BasketLineID})
		case line.VariantID != nil:
			if line.Quantity < 1 {
				return nil, domain.ErrInvalidQuantity
			}
			selectors = append(selectors, orderrepo.LineSelector{VariantID: line.VariantID, Quantity: line.Quantity})
		default:
			return nil, domain.ErrEmptyOrder
		}
	}

	res, err := s.orders.Create(ctx, orderrepo.CreateInput{
		UserID:  user.ID,
		Address: address.FullAddress,
		Comment: in.Comment,
		Lines:   selectors,
	})
	if err != nil {
		return nil, err
	}

	if in.ClientTotal != nil && !in.ClientTotal.Equal(res.Order.TotalPrice) {
		s.logger.Printf("order service: client total %s differs from computed %s order_id=%d",
			in.ClientTotal.StringFixed(2), res.Order.TotalPrice.StringFixed(2), res.Order.ID)
	}

	var msgs []notify.Message
	if msg, ok := notify.NewOrderMessage(res.Shop, *user, res.Order); ok {
		msgs = append(msgs, msg)
	}
	if msg, ok := notify.OrderConfirmedMessage(*user, res.Order); ok {
		msgs = append(msgs, msg)
	}

	return &CreateResult{Order: res.Order, Messages: msgs}, nil
}

type StatusResult struct {
	Order    domain.Order
	Changed  bool
	Messages []notify.Message
}

// UpdateStatus moves an order along its lifecycle. Setting the current status
// again succeeds without re-triggering the notification; a value outside the
// known set fails, as does a jump the adjacency table does not allow.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (*StatusResult, error) {
	next, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if ord.Status == next {
		return &StatusResult{Order: *ord, Changed: false}, nil
	}
	if !ord.Status.CanTransition(next) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	ord.Status = next

	var msgs []notify.Message
	user, err := s.users.GetByID(ctx, ord.UserID)
	if err != nil {
		// The transition is already persisted; a missing user only costs the
		// notification.
		s.logger.Printf("order service: resolve user for status notification order_id=%d: %v", orderID, err)
	} else if msg, ok := notify.StatusChangedMessage(*user, *ord); ok {
		msgs = append(msgs, msg)
	}

	return &StatusResult{Order: *ord, Changed: true, Messages: msgs}, nil
}

// ListUserOrders returns the user's orders scoped to their active shop,
// newest first. A user without an active shop has nothing to list.
func (s *Service) ListUserOrders(ctx context.Context, telegramID string) ([]domain.Order, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user.ActiveShopID == nil {
		return nil, nil
	}
	return s.orders.ListByUserShop(ctx, user.ID, *user.ActiveShopID)
}

// GetOrder returns one order, rejecting access to another user's order.
func (s *Service) GetOrder(ctx context.Context, telegramID string, orderID int64) (*domain.Order, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	ord, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	return ord, nil
}

func (s *Service) ListShopOrders(ctx context.Context, shopCode string) ([]domain.Order, error) {
	shop, err := s.shops.GetByCode(ctx, shopCode)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByShop(ctx, shop.ID)
}
