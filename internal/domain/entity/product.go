package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupa productos; admite un nivel de jerarquía vía ParentID.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	ParentID    *string
	IsActive    bool
	SortOrder   int
}

// Product representa un producto o SKU del catálogo.
// Las existencias se manejan por bodega en Inventory, nunca aquí.
type Product struct {
	ID          string
	SKU         string // código único de negocio
	Barcode     string
	Name        string
	Description string
	CategoryID  string
	Unit        string
	CostPrice   decimal.Decimal
	SellPrice   decimal.Decimal
	MinPrice    decimal.Decimal
	Weight      decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
