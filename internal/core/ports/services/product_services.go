package services

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
	"github.com/velorashop/velora_backend/internal/dto"
)

// ProductSvcFacade manages the product catalog. Write operations are gated by
// (product, create/update/delete) permissions at the HTTP layer.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}
