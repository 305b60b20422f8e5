package catalog

import (
	"context"

	"botshop/internal/domain"
	catalogrepo "botshop/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context, shopCode string) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, shopCode)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, in catalogrepo.CreateProductInput) (*domain.Product, error) {
	return s.repo.CreateProduct(ctx, in)
}

func (s *Service) GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error) {
	return s.repo.GetVariant(ctx, id)
}

// CreateVariant persists a new variant. The discount derivation runs before
// the write, so a variant stored with only one of discount price / percent
// always carries both.
func (s *Service) CreateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error) {
	if v.Stock < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	v.ApplyDiscountDerivation()
	return s.repo.CreateVariant(ctx, v)
}

// UpdateVariant re-runs the derivation on every persist, not just creation.
func (s *Service) UpdateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error) {
	if v.Stock < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	v.ApplyDiscountDerivation()
	return s.repo.UpdateVariant(ctx, v)
}

func (s *Service) DeleteVariant(ctx context.Context, id int64) error {
	return s.repo.DeleteVariant(ctx, id)
}
