package catalog

import (
	"context"

	"botshop/internal/domain"
)

type CreateProductInput struct {
	ShopID           int64
	Name             string
	Description      *string
	PrepaymentAmount *string
}

// Repository is the catalog store: read-mostly product/variant access plus the
// variant writes that carry the pricing-derivation rule.
type Repository interface {
	ListProducts(ctx context.Context, shopCode string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)

	GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error)
	ListVariants(ctx context.Context, productID int64) ([]domain.ProductVariant, error)
	// GetVariantShop resolves the shop backing a variant's product.
	GetVariantShop(ctx context.Context, variantID int64) (*domain.Shop, error)
	CreateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error)
	UpdateVariant(ctx context.Context, v domain.ProductVariant) (*domain.ProductVariant, error)
	DeleteVariant(ctx context.Context, id int64) error
}
