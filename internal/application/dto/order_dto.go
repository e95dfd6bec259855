package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden o compra entrante.
type OrderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Note      string          `json:"note,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customerId"`
	Items           []OrderItemRequest `json:"items"`
	Discount        decimal.Decimal    `json:"discount"`
	TaxRate         *decimal.Decimal   `json:"taxRate,omitempty"` // nil = tasa por defecto
	DeliveryDate    *time.Time         `json:"deliveryDate,omitempty"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	Note            string             `json:"note,omitempty"`
}

// UpdateOrderRequest body para PUT /api/orders (solo en DRAFT, salvo status).
type UpdateOrderRequest struct {
	ID              string             `json:"id"`
	Status          *string            `json:"status,omitempty"`
	Items           []OrderItemRequest `json:"items,omitempty"`
	Discount        *decimal.Decimal   `json:"discount,omitempty"`
	DeliveryDate    *time.Time         `json:"deliveryDate,omitempty"`
	DeliveryAddress *string            `json:"deliveryAddress,omitempty"`
	Note            *string            `json:"note,omitempty"`
}

// ConfirmOrderRequest body para POST /api/orders/:id/confirm.
type ConfirmOrderRequest struct {
	WarehouseID string `json:"warehouseId"` // bodega desde la que se despacha
}

// OrderItemResponse línea serializada.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
}

// OrderResponse orden serializada con líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      string              `json:"customerId"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Discount        decimal.Decimal     `json:"discount"`
	TaxRate         decimal.Decimal     `json:"taxRate"`
	TaxAmount       decimal.Decimal     `json:"taxAmount"`
	FinalAmount     decimal.Decimal     `json:"finalAmount"`
	OrderDate       time.Time           `json:"orderDate"`
	DeliveryDate    *time.Time          `json:"deliveryDate,omitempty"`
	DeliveryAddress string              `json:"deliveryAddress,omitempty"`
	Note            string              `json:"note,omitempty"`
	SalesPersonID   string              `json:"salesPersonId,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}
