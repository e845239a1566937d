package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. El inventario lo referencia pero no lo posee.
type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	Active     bool
	CategoryID string // vacío si no tiene
	VariantID  string
	FormatID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductDetail producto con sus referencias de catálogo resueltas (join).
type ProductDetail struct {
	Product
	Category *Category
	Variant  *Variant
	Format   *Format
}
