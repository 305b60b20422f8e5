package basket

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"botshop/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type stubUsers struct {
	user *domain.User
	err  error
}

func (s *stubUsers) GetByTelegramID(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

type stubCatalog struct {
	shop *domain.Shop
	err  error
}

func (s *stubCatalog) GetVariantShop(_ context.Context, _ int64) (*domain.Shop, error) {
	return s.shop, s.err
}

type stubBaskets struct {
	line    *domain.BasketLine
	getErr  error
	lines   []domain.BasketLine
	listErr error

	upsertQty    int
	setQty       int
	setLineID    int64
	deletedID    int64
	deletedByVar bool
	upsertErr    error
}

func (s *stubBaskets) Upsert(_ context.Context, userID, shopID, variantID int64, quantity int) (*domain.BasketLine, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.upsertQty = quantity
	return &domain.BasketLine{ID: 10, UserID: userID, ShopID: shopID, VariantID: variantID, Quantity: quantity}, nil
}

func (s *stubBaskets) GetByVariant(_ context.Context, _, _ int64) (*domain.BasketLine, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.line, nil
}

func (s *stubBaskets) SetQuantity(_ context.Context, lineID int64, quantity int) error {
	s.setLineID = lineID
	s.setQty = quantity
	return nil
}

func (s *stubBaskets) ListByUserShop(_ context.Context, _ int64, _ string) ([]domain.BasketLine, error) {
	return s.lines, s.listErr
}

func (s *stubBaskets) Delete(_ context.Context, lineID int64) error {
	s.deletedID = lineID
	return nil
}

func (s *stubBaskets) DeleteByVariant(_ context.Context, _, _ int64) (bool, error) {
	s.deletedByVar = true
	return s.line != nil, nil
}

func activeShop() *domain.Shop {
	return &domain.Shop{ID: 1, Code: "demo-shop", IsActive: true}
}

func basketUser() *domain.User {
	return &domain.User{ID: 7, TelegramID: "100"}
}

func TestUpsertLineReplacesQuantity(t *testing.T) {
	baskets := &stubBaskets{}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	line, err := svc.UpsertLine(context.Background(), "100", 5, 3)
	if err != nil {
		t.Fatalf("UpsertLine: %v", err)
	}
	if line.Quantity != 3 || baskets.upsertQty != 3 {
		t.Errorf("quantity = %d (upserted %d), want 3", line.Quantity, baskets.upsertQty)
	}
}

func TestUpsertLineZeroRemoves(t *testing.T) {
	baskets := &stubBaskets{line: &domain.BasketLine{ID: 10, Quantity: 2}}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	line, err := svc.UpsertLine(context.Background(), "100", 5, 0)
	if err != nil {
		t.Fatalf("UpsertLine: %v", err)
	}
	if line != nil {
		t.Errorf("expected no line after quantity zero, got %+v", line)
	}
	if !baskets.deletedByVar {
		t.Errorf("expected the line to be deleted by variant")
	}
}

func TestUpsertLineZeroIdempotentWhenAbsent(t *testing.T) {
	baskets := &stubBaskets{} // no existing line
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	if _, err := svc.UpsertLine(context.Background(), "100", 5, 0); err != nil {
		t.Fatalf("removing an absent line must be a no-op, got %v", err)
	}
}

func TestUpsertLineNegativeQuantity(t *testing.T) {
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, &stubBaskets{})

	if _, err := svc.UpsertLine(context.Background(), "100", 5, -1); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("got %v, want ErrInvalidQuantity", err)
	}
}

func TestUpsertLineInactiveShop(t *testing.T) {
	shop := &domain.Shop{ID: 1, IsActive: false}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: shop}, &stubBaskets{})

	if _, err := svc.UpsertLine(context.Background(), "100", 5, 1); !errors.Is(err, domain.ErrInactiveShop) {
		t.Errorf("got %v, want ErrInactiveShop", err)
	}
}

func TestUpsertLineUnknownVariant(t *testing.T) {
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{err: domain.ErrVariantNotFound}, &stubBaskets{})

	if _, err := svc.UpsertLine(context.Background(), "100", 5, 1); !errors.Is(err, domain.ErrVariantNotFound) {
		t.Errorf("got %v, want ErrVariantNotFound", err)
	}
}

func TestUpsertLineUnknownUser(t *testing.T) {
	svc := New(&stubUsers{err: domain.ErrUserNotFound}, &stubCatalog{shop: activeShop()}, &stubBaskets{})

	if _, err := svc.UpsertLine(context.Background(), "100", 5, 1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestIncrementLineAddCreatesMissing(t *testing.T) {
	baskets := &stubBaskets{getErr: domain.ErrLineNotFound}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	qty, err := svc.IncrementLine(context.Background(), "100", 5, 1)
	if err != nil {
		t.Fatalf("IncrementLine: %v", err)
	}
	if qty != 1 {
		t.Errorf("quantity = %d, want 1", qty)
	}
}

func TestIncrementLineAddCreatesMissingWrappedError(t *testing.T) {
	baskets := &stubBaskets{getErr: fmt.Errorf("query basket line: %w", domain.ErrLineNotFound)}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	qty, err := svc.IncrementLine(context.Background(), "100", 5, 1)
	if err != nil {
		t.Fatalf("IncrementLine: %v", err)
	}
	if qty != 1 {
		t.Errorf("quantity = %d, want 1", qty)
	}
}

func TestIncrementLineRemoveMissingFails(t *testing.T) {
	baskets := &stubBaskets{getErr: domain.ErrLineNotFound}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	if _, err := svc.IncrementLine(context.Background(), "100", 5, -1); !errors.Is(err, domain.ErrLineNotFound) {
		t.Errorf("got %v, want ErrLineNotFound", err)
	}
}

func TestIncrementLineAdd(t *testing.T) {
	baskets := &stubBaskets{line: &domain.BasketLine{ID: 10, Quantity: 3}}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	qty, err := svc.IncrementLine(context.Background(), "100", 5, 1)
	if err != nil {
		t.Fatalf("IncrementLine: %v", err)
	}
	if qty != 4 || baskets.setQty != 4 {
		t.Errorf("quantity = %d (persisted %d), want 4", qty, baskets.setQty)
	}
}

func TestIncrementLineRemove(t *testing.T) {
	baskets := &stubBaskets{line: &domain.BasketLine{ID: 10, Quantity: 3}}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	qty, err := svc.IncrementLine(context.Background(), "100", 5, -1)
	if err != nil {
		t.Fatalf("IncrementLine: %v", err)
	}
	if qty != 2 || baskets.setQty != 2 {
		t.Errorf("quantity = %d (persisted %d), want 2", qty, baskets.setQty)
	}
}

func TestIncrementLineRemoveAtOneDeletes(t *testing.T) {
	baskets := &stubBaskets{line: &domain.BasketLine{ID: 10, Quantity: 1}}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	qty, err := svc.IncrementLine(context.Background(), "100", 5, -1)
	if err != nil {
		t.Fatalf("IncrementLine: %v", err)
	}
	if qty != 0 {
		t.Errorf("quantity = %d, want 0", qty)
	}
	if baskets.deletedID != 10 {
		t.Errorf("deleted line id = %d, want 10", baskets.deletedID)
	}
}

func TestIncrementLineRejectsOtherDeltas(t *testing.T) {
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, &stubBaskets{})

	for _, delta := range []int{0, 2, -2} {
		if _, err := svc.IncrementLine(context.Background(), "100", 5, delta); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("delta %d: got %v, want ErrInvalidQuantity", delta, err)
		}
	}
}

func TestListLinesComputesLiveTotal(t *testing.T) {
	discount := dec("800")
	baskets := &stubBaskets{lines: []domain.BasketLine{
		{ID: 1, Quantity: 2, Variant: &domain.ProductVariant{Price: dec("1000"), DiscountPrice: &discount}},
		{ID: 2, Quantity: 1, Variant: &domain.ProductVariant{Price: dec("900")}},
	}}
	svc := New(&stubUsers{user: basketUser()}, &stubCatalog{shop: activeShop()}, baskets)

	summary, err := svc.ListLines(context.Background(), "100", "demo-shop")
	if err != nil {
		t.Fatalf("ListLines: %v", err)
	}
	if len(summary.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(summary.Lines))
	}
	if !summary.Total.Equal(dec("2500")) {
		t.Errorf("total = %s, want 2500", summary.Total)
	}
}
