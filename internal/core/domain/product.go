package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Write operations on products are gated by the
// (product, create/update/delete) permission tuples.
type Product struct {
	ProductID   string          `json:"productID"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageURL,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
