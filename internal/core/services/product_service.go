package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portsrepo "github.com/velorashop/velora_backend/internal/core/ports/repositories"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
	"github.com/velorashop/velora_backend/internal/dto"
)

type productService struct {
	productRepo portsrepo.ProductRepository
}

// NewProductService creates the product catalog service.
func NewProductService(productRepo portsrepo.ProductRepository) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	now := time.Now()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	products, err := s.productRepo.FindProducts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != product.Name {
		product.Name = *req.Name
		changed = true
	}
	if req.Description != nil && *req.Description != product.Description {
		product.Description = *req.Description
		changed = true
	}
	if req.Price != nil && !req.Price.Equal(product.Price) {
		product.Price = *req.Price
		changed = true
	}
	if req.Stock != nil && *req.Stock != product.Stock {
		product.Stock = *req.Stock
		changed = true
	}
	if req.ImageURL != nil && *req.ImageURL != product.ImageURL {
		product.ImageURL = *req.ImageURL
		changed = true
	}
	if !changed {
		return product, nil
	}

	product.LastUpdatedAt = time.Now()
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.MarkProductDeleted(ctx, productID, time.Now())
}
