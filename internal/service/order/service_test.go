package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"botshop/internal/domain"
	"botshop/internal/notify"
	orderrepo "botshop/internal/repository/order"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

type stubUsers struct {
	user       *domain.User
	userErr    error
	address    *domain.UserAddress
	addressErr error
	byIDErr    error
}

func (s *stubUsers) GetByTelegramID(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.userErr
}

func (s *stubUsers) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	return s.user, nil
}

func (s *stubUsers) GetAddress(_ context.Context, _, _ int64) (*domain.UserAddress, error) {
	return s.address, s.addressErr
}

type stubShops struct {
	shop *domain.Shop
	err  error
}

func (s *stubShops) GetByCode(_ context.Context, _ string) (*domain.Shop, error) {
	return s.shop, s.err
}

type stubOrders struct {
	createIn  *orderrepo.CreateInput
	createRes *orderrepo.CreateResult
	createErr error

	order     *domain.Order
	getErr    error
	updated   domain.OrderStatus
	updateErr error

	userOrders []domain.Order
	shopOrders []domain.Order
}

func (s *stubOrders) Create(_ context.Context, in orderrepo.CreateInput) (*orderrepo.CreateResult, error) {
	s.createIn = &in
	return s.createRes, s.createErr
}

func (s *stubOrders) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

func (s *stubOrders) ListByUserShop(_ context.Context, _, _ int64) ([]domain.Order, error) {
	return s.userOrders, nil
}

func (s *stubOrders) ListByShop(_ context.Context, _ int64) ([]domain.Order, error) {
	return s.shopOrders, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, _ int64, status domain.OrderStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = status
	return nil
}

func orderUser() *domain.User {
	return &domain.User{
		ID:         7,
		TelegramID: "100",
		FirstName:  strPtr("Ali"),
		Language:   domain.LangUz,
	}
}

func notifiableShop() *domain.Shop {
	return &domain.Shop{ID: 1, Code: "demo-shop", IsActive: true, TelegramGroup: strPtr("-100500")}
}

func assembledOrder() domain.Order {
	return domain.Order{
		ID:         42,
		UserID:     7,
		Address:    "Tashkent, Chilonzor 5",
		Status:     domain.StatusNew,
		TotalPrice: dec("2500"),
		CreatedAt:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateOrder(t *testing.T) {
	users := &stubUsers{user: orderUser(), address: &domain.UserAddress{ID: 3, UserID: 7, FullAddress: "Tashkent, Chilonzor 5"}}
	orders := &stubOrders{createRes: &orderrepo.CreateResult{Order: assembledOrder(), Shop: *notifiableShop()}}
	svc := New(users, &stubShops{}, orders, nil)

	res, err := svc.Create(context.Background(), "100", CreateInput{
		AddressID: 3,
		Lines: []LineInput{
			{BasketLineID: i64Ptr(11)},
			{VariantID: i64Ptr(5), Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !res.Order.TotalPrice.Equal(dec("2500")) {
		t.Errorf("total = %s, want 2500", res.Order.TotalPrice)
	}
	if got := len(orders.createIn.Lines); got != 2 {
		t.Fatalf("selectors = %d, want 2", got)
	}
	if orders.createIn.Lines[0].BasketLineID == nil || *orders.createIn.Lines[0].BasketLineID != 11 {
		t.Errorf("first selector must reference basket line 11")
	}
	if orders.createIn.Lines[1].VariantID == nil || orders.createIn.Lines[1].Quantity != 2 {
		t.Errorf("second selector must carry variant and quantity")
	}

	// one message for the shop group, one for the buyer
	if len(res.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(res.Messages))
	}
	if res.Messages[0].Kind != notify.KindNewOrder || res.Messages[0].ChatID != "-100500" {
		t.Errorf("first message = %+v, want new_order to shop group", res.Messages[0])
	}
	if res.Messages[1].Kind != notify.KindOrderConfirmed || res.Messages[1].ChatID != "100" {
		t.Errorf("second message = %+v, want order_confirmed to buyer", res.Messages[1])
	}
}

func TestCreateOrderWithoutShopGroup(t *testing.T) {
	shop := notifiableShop()
	shop.TelegramGroup = nil
	users := &stubUsers{user: orderUser(), address: &domain.UserAddress{ID: 3, UserID: 7, FullAddress: "addr"}}
	orders := &stubOrders{createRes: &orderrepo.CreateResult{Order: assembledOrder(), Shop: *shop}}
	svc := New(users, &stubShops{}, orders, nil)

	res, err := svc.Create(context.Background(), "100", CreateInput{
		AddressID: 3,
		Lines:     []LineInput{{BasketLineID: i64Ptr(11)}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.Messages) != 1 || res.Messages[0].Kind != notify.KindOrderConfirmed {
		t.Errorf("expected only the buyer confirmation, got %+v", res.Messages)
	}
}

func TestCreateOrderEmpty(t *testing.T) {
	orders := &stubOrders{}
	svc := New(&stubUsers{user: orderUser()}, &stubShops{}, orders, nil)

	if _, err := svc.Create(context.Background(), "100", CreateInput{AddressID: 3}); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Errorf("got %v, want ErrEmptyOrder", err)
	}
	if orders.createIn != nil {
		t.Errorf("no repository call may happen for an empty order")
	}
}

func TestCreateOrderUnknownUserBeforeEmptiness(t *testing.T) {
	users := &stubUsers{userErr: domain.ErrUserNotFound}
	svc := New(users, &stubShops{}, &stubOrders{}, nil)

	// the user is resolved first, so an unknown user wins over an empty order
	if _, err := svc.Create(context.Background(), "missing", CreateInput{AddressID: 3}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestCreateOrderSelectorValidation(t *testing.T) {
	users := &stubUsers{user: orderUser(), address: &domain.UserAddress{ID: 3, UserID: 7, FullAddress: "addr"}}
	svc := New(users, &stubShops{}, &stubOrders{}, nil)

	_, err := svc.Create(context.Background(), "100", CreateInput{
		AddressID: 3,
		Lines:     []LineInput{{VariantID: i64Ptr(5), Quantity: 0}},
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("explicit line with zero quantity: got %v, want ErrInvalidQuantity", err)
	}

	_, err = svc.Create(context.Background(), "100", CreateInput{
		AddressID: 3,
		Lines:     []LineInput{{}},
	})
	if !errors.Is(err, domain.ErrEmptyOrder) {
		t.Errorf("selector with neither reference: got %v, want ErrEmptyOrder", err)
	}
}

func TestCreateOrderUnknownAddress(t *testing.T) {
	users := &stubUsers{user: orderUser(), addressErr: domain.ErrAddressNotFound}
	svc := New(users, &stubShops{}, &stubOrders{}, nil)

	_, err := svc.Create(context.Background(), "100", CreateInput{
		AddressID: 99,
		Lines:     []LineInput{{BasketLineID: i64Ptr(11)}},
	})
	if !errors.Is(err, domain.ErrAddressNotFound) {
		t.Errorf("got %v, want ErrAddressNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	ord := assembledOrder()
	users := &stubUsers{user: orderUser()}
	orders := &stubOrders{order: &ord}
	svc := New(users, &stubShops{}, orders, nil)

	res, err := svc.UpdateStatus(context.Background(), 42, "confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !res.Changed {
		t.Errorf("expected Changed")
	}
	if orders.updated != domain.StatusConfirmed {
		t.Errorf("persisted status = %s, want confirmed", orders.updated)
	}
	if len(res.Messages) != 1 || res.Messages[0].Kind != notify.KindStatusChanged {
		t.Fatalf("messages = %+v, want one status_changed", res.Messages)
	}
	if res.Messages[0].ChatID != "100" {
		t.Errorf("status message chat = %q, want the owner", res.Messages[0].ChatID)
	}
}

func TestUpdateStatusSameValueIsNoop(t *testing.T) {
	ord := assembledOrder()
	orders := &stubOrders{order: &ord}
	svc := New(&stubUsers{user: orderUser()}, &stubShops{}, orders, nil)

	res, err := svc.UpdateStatus(context.Background(), 42, "new")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if res.Changed {
		t.Errorf("same-value update must report no change")
	}
	if len(res.Messages) != 0 {
		t.Errorf("same-value update must not notify, got %+v", res.Messages)
	}
	if orders.updated != "" {
		t.Errorf("same-value update must not persist, wrote %q", orders.updated)
	}
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	ord := assembledOrder()
	orders := &stubOrders{order: &ord}
	svc := New(&stubUsers{user: orderUser()}, &stubShops{}, orders, nil)

	if _, err := svc.UpdateStatus(context.Background(), 42, "pending"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
	if orders.updated != "" {
		t.Errorf("invalid status must leave the order untouched, wrote %q", orders.updated)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	ord := assembledOrder()
	ord.Status = domain.StatusDelivered
	orders := &stubOrders{order: &ord}
	svc := New(&stubUsers{user: orderUser()}, &stubShops{}, orders, nil)

	if _, err := svc.UpdateStatus(context.Background(), 42, "cancelled"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
	if orders.updated != "" {
		t.Errorf("rejected transition must not persist, wrote %q", orders.updated)
	}
}

func TestUpdateStatusMissingUserStillTransitions(t *testing.T) {
	ord := assembledOrder()
	users := &stubUsers{user: orderUser(), byIDErr: domain.ErrUserNotFound}
	orders := &stubOrders{order: &ord}
	svc := New(users, &stubShops{}, orders, nil)

	res, err := svc.UpdateStatus(context.Background(), 42, "confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !res.Changed || orders.updated != domain.StatusConfirmed {
		t.Errorf("transition must persist even without a notifiable user")
	}
	if len(res.Messages) != 0 {
		t.Errorf("no message expected when the owner cannot be resolved")
	}
}

func TestGetOrderOwnership(t *testing.T) {
	ord := assembledOrder()
	ord.UserID = 99
	orders := &stubOrders{order: &ord}
	svc := New(&stubUsers{user: orderUser()}, &stubShops{}, orders, nil)

	if _, err := svc.GetOrder(context.Background(), "100", 42); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestListUserOrdersWithoutActiveShop(t *testing.T) {
	svc := New(&stubUsers{user: orderUser()}, &stubShops{}, &stubOrders{userOrders: []domain.Order{assembledOrder()}}, nil)

	orders, err := svc.ListUserOrders(context.Background(), "100")
	if err != nil {
		t.Fatalf("ListUserOrders: %v", err)
	}
	if orders != nil {
		t.Errorf("no active shop must list nothing, got %d orders", len(orders))
	}
}

func TestListUserOrders(t *testing.T) {
	user := orderUser()
	user.ActiveShopID = i64Ptr(1)
	svc := New(&stubUsers{user: user}, &stubShops{}, &stubOrders{userOrders: []domain.Order{assembledOrder()}}, nil)

	orders, err := svc.ListUserOrders(context.Background(), "100")
	if err != nil {
		t.Fatalf("ListUserOrders: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("orders = %d, want 1", len(orders))
	}
}
