package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId"`
	Unit        string          `json:"unit"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	Weight      decimal.Decimal `json:"weight"`
}

// UpdateProductRequest body para PUT /api/products. Campos nil no se tocan.
type UpdateProductRequest struct {
	ID          string           `json:"id"`
	Barcode     *string          `json:"barcode,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	CostPrice   *decimal.Decimal `json:"costPrice,omitempty"`
	SellPrice   *decimal.Decimal `json:"sellPrice,omitempty"`
	MinPrice    *decimal.Decimal `json:"minPrice,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// ProductResponse producto serializado.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId"`
	Unit        string          `json:"unit"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	MinPrice    decimal.Decimal `json:"minPrice"`
	Weight      decimal.Decimal `json:"weight"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CategoryResponse categoría serializada.
type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	IsActive    bool    `json:"isActive"`
	SortOrder   int     `json:"sortOrder"`
}

// CategoryRequest body para crear/actualizar categorías.
type CategoryRequest struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	SortOrder   int     `json:"sortOrder,omitempty"`
}
