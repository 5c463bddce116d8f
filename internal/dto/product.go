package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// CreateProductRequest is the payload for POST /api/v1/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
	ImageURL    string          `json:"imageURL"`
}

// UpdateProductRequest carries optional product changes.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"imageURL,omitempty"`
}

// ProductResponse is the API projection of a product.
type ProductResponse struct {
	ProductID   string          `json:"productID"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageURL,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToProductResponse maps a domain product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:   p.ProductID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

// ToProductResponses maps a slice of products.
func ToProductResponses(ps []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i := range ps {
		out[i] = ToProductResponse(&ps[i])
	}
	return out
}
