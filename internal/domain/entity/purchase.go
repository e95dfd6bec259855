package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusDraft     = "DRAFT"
	PurchaseStatusSubmitted = "SUBMITTED"
	PurchaseStatusConfirmed = "CONFIRMED"
	PurchaseStatusShipped   = "SHIPPED"
	PurchaseStatusPartial   = "PARTIAL"
	PurchaseStatusReceived  = "RECEIVED"
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Purchase representa la cabecera de una orden de compra.
type Purchase struct {
	ID             string
	PurchaseNumber string // PO{YYYYMMDD}{seq}
	SupplierID     string
	Status         string
	TotalAmount    decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	FinalAmount    decimal.Decimal
	OrderDate      time.Time
	ExpectedDate   *time.Time
	ReceivedDate   *time.Time
	WarehouseID    string // bodega destino de la recepción
	Note           string
	PurchaserID    string
	Items          []PurchaseItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PurchaseItem representa una línea de una orden de compra.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Amount      decimal.Decimal
	ReceivedQty int64
	Note        string
}
