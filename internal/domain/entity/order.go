package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	OrderStatusDraft      = "DRAFT"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Order representa la cabecera de una orden de venta.
type Order struct {
	ID              string
	OrderNumber     string // SO{YYYYMMDD}{seq}
	CustomerID      string
	Status          string
	TotalAmount     decimal.Decimal // suma de líneas
	Discount        decimal.Decimal // descuento de cabecera
	TaxRate         decimal.Decimal // fracción, ej. 0.13
	TaxAmount       decimal.Decimal
	FinalAmount     decimal.Decimal
	OrderDate       time.Time
	DeliveryDate    *time.Time
	DeliveryAddress string
	Note            string
	SalesPersonID   string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem representa una línea de una orden de venta.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	TaxRate   decimal.Decimal
	Amount    decimal.Decimal // quantity*unitPrice - discount
	Note      string
}
