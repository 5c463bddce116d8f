package repositories

import (
	"context"
	"time"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// ProductRepository defines persistence operations for the product catalog.
type ProductRepository interface {
	// SaveProduct inserts a new product. apperrors.ErrDuplicate on SKU clash.
	SaveProduct(ctx context.Context, product domain.Product) error

	// FindProductByID retrieves a product, apperrors.ErrNotFound if absent.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProducts retrieves a paginated list of non-deleted products.
	FindProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)

	// UpdateProduct persists changes to an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// MarkProductDeleted soft-deletes a product.
	MarkProductDeleted(ctx context.Context, productID string, deletedAt time.Time) error
}
