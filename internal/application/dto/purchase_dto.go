package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID   string             `json:"supplierId"`
	WarehouseID  string             `json:"warehouseId"`
	Items        []OrderItemRequest `json:"items"`
	TaxRate      *decimal.Decimal   `json:"taxRate,omitempty"`
	ExpectedDate *time.Time         `json:"expectedDate,omitempty"`
	Note         string             `json:"note,omitempty"`
}

// UpdatePurchaseRequest body para PUT /api/purchases (solo en DRAFT, salvo status).
type UpdatePurchaseRequest struct {
	ID           string             `json:"id"`
	Status       *string            `json:"status,omitempty"`
	Items        []OrderItemRequest `json:"items,omitempty"`
	WarehouseID  *string            `json:"warehouseId,omitempty"`
	ExpectedDate *time.Time         `json:"expectedDate,omitempty"`
	Note         *string            `json:"note,omitempty"`
}

// ReceiveItemRequest cantidad recibida para una línea de compra.
type ReceiveItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int64  `json:"quantity"`
}

// ReceivePurchaseRequest body para POST /api/purchases/:id/receive.
// Sin líneas se interpreta como recepción total de lo pendiente.
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items,omitempty"`
}

// PurchaseItemResponse línea de compra serializada.
type PurchaseItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Amount      decimal.Decimal `json:"amount"`
	ReceivedQty int64           `json:"receivedQty"`
	Note        string          `json:"note,omitempty"`
}

// PurchaseResponse compra serializada con líneas.
type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber string                 `json:"purchaseNumber"`
	SupplierID     string                 `json:"supplierId"`
	Status         string                 `json:"status"`
	TotalAmount    decimal.Decimal        `json:"totalAmount"`
	TaxRate        decimal.Decimal        `json:"taxRate"`
	TaxAmount      decimal.Decimal        `json:"taxAmount"`
	FinalAmount    decimal.Decimal        `json:"finalAmount"`
	OrderDate      time.Time              `json:"orderDate"`
	ExpectedDate   *time.Time             `json:"expectedDate,omitempty"`
	ReceivedDate   *time.Time             `json:"receivedDate,omitempty"`
	WarehouseID    string                 `json:"warehouseId,omitempty"`
	Note           string                 `json:"note,omitempty"`
	PurchaserID    string                 `json:"purchaserId,omitempty"`
	Items          []PurchaseItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}
