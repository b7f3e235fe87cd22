package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for the CEE product catalog.
type Repository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	ListActiveProducts(ctx context.Context) ([]Product, error)
}
