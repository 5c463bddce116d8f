package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the database row model for the products table.
type Product struct {
	ProductID   string          `db:"product_id"`
	SKU         string          `db:"sku"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	ImageURL    string          `db:"image_url"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
