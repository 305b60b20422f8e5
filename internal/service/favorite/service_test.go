package favorite

import (
	"context"
	"errors"
	"testing"

	"botshop/internal/domain"
)

type stubUsers struct {
	user *domain.User
	err  error
}

func (s *stubUsers) GetByTelegramID(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.err
}

type stubCatalog struct {
	product *domain.Product
	err     error
}

func (s *stubCatalog) GetProduct(_ context.Context, _ int64) (*domain.Product, error) {
	return s.product, s.err
}

type stubFavorites struct {
	existing  bool
	favorites []domain.Favorite
	deleteErr error

	addedUser    int64
	addedProduct int64
	deletedID    int64
	deletedUser  int64
}

func (s *stubFavorites) Add(_ context.Context, userID, productID int64) (*domain.Favorite, bool, error) {
	s.addedUser = userID
	s.addedProduct = productID
	return &domain.Favorite{ID: 1, UserID: userID, ProductID: productID}, !s.existing, nil
}

func (s *stubFavorites) ListByUserShop(_ context.Context, _ int64, _ string) ([]domain.Favorite, error) {
	return s.favorites, nil
}

func (s *stubFavorites) Delete(_ context.Context, favoriteID, userID int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = favoriteID
	s.deletedUser = userID
	return nil
}

func favUser() *domain.User {
	return &domain.User{ID: 7, TelegramID: "100"}
}

func favProduct() *domain.Product {
	return &domain.Product{ID: 5, Name: "Classic T-Shirt"}
}

func TestAddFavorite(t *testing.T) {
	favorites := &stubFavorites{}
	svc := New(&stubUsers{user: favUser()}, &stubCatalog{product: favProduct()}, favorites)

	created, err := svc.Add(context.Background(), "100", 5)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !created {
		t.Errorf("fresh pair must report created")
	}
	if favorites.addedUser != 7 || favorites.addedProduct != 5 {
		t.Errorf("added (%d, %d), want (7, 5)", favorites.addedUser, favorites.addedProduct)
	}
}

func TestAddFavoriteAlreadyExists(t *testing.T) {
	favorites := &stubFavorites{existing: true}
	svc := New(&stubUsers{user: favUser()}, &stubCatalog{product: favProduct()}, favorites)

	created, err := svc.Add(context.Background(), "100", 5)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created {
		t.Errorf("re-favoriting must not report created")
	}
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	favorites := &stubFavorites{}
	svc := New(&stubUsers{user: favUser()}, &stubCatalog{err: domain.ErrProductNotFound}, favorites)

	if _, err := svc.Add(context.Background(), "100", 99); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("got %v, want ErrProductNotFound", err)
	}
	if favorites.addedProduct != 0 {
		t.Errorf("no write may happen for an unknown product")
	}
}

func TestAddFavoriteUnknownUser(t *testing.T) {
	svc := New(&stubUsers{err: domain.ErrUserNotFound}, &stubCatalog{product: favProduct()}, &stubFavorites{})

	if _, err := svc.Add(context.Background(), "100", 5); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestListFavorites(t *testing.T) {
	favorites := &stubFavorites{favorites: []domain.Favorite{
		{ID: 1, ProductID: 5, Product: favProduct()},
	}}
	svc := New(&stubUsers{user: favUser()}, &stubCatalog{}, favorites)

	list, err := svc.List(context.Background(), "100", "demo-shop")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Product == nil {
		t.Errorf("list = %+v", list)
	}
}

func TestDeleteFavoriteScopedToUser(t *testing.T) {
	favorites := &stubFavorites{}
	svc := New(&stubUsers{user: favUser()}, &stubCatalog{}, favorites)

	if err := svc.Delete(context.Background(), "100", 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if favorites.deletedID != 3 || favorites.deletedUser != 7 {
		t.Errorf("deleted (%d, user %d), want (3, user 7)", favorites.deletedID, favorites.deletedUser)
	}
}

func TestDeleteFavoriteMissing(t *testing.T) {
	favorites := &stubFavorites{deleteErr: domain.ErrFavoriteNotFound}
	svc := New(&stubUsers{user: favUser()}, &stubCatalog{}, favorites)

	if err := svc.Delete(context.Background(), "100", 99); !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Errorf("got %v, want ErrFavoriteNotFound", err)
	}
}
