package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera.
const (
	TxTypeSalesRevenue    = "SALES_REVENUE"
	TxTypePurchaseExpense = "PURCHASE_EXPENSE"
	TxTypeSalesReturn     = "SALES_RETURN"
	TxTypePurchaseReturn  = "PURCHASE_RETURN"
	TxTypeOtherIncome     = "OTHER_INCOME"
	TxTypeOtherExpense    = "OTHER_EXPENSE"
)

// Direcciones contables.
const (
	DirectionDebit  = "DEBIT"
	DirectionCredit = "CREDIT"
)

// ValidTransactionType indica si s es un tipo de transacción conocido.
func ValidTransactionType(s string) bool {
	switch s {
	case TxTypeSalesRevenue, TxTypePurchaseExpense, TxTypeSalesReturn,
		TxTypePurchaseReturn, TxTypeOtherIncome, TxTypeOtherExpense:
		return true
	}
	return false
}

// Transaction representa un asiento simple contra una cuenta.
type Transaction struct {
	ID            string
	VoucherNo     string // V{YYYYMMDD}{seq}
	Date          time.Time
	Type          string
	AccountID     string
	Amount        decimal.Decimal // siempre positivo; el signo lo da Direction
	Direction     string          // DEBIT | CREDIT
	ReferenceType string          // ej. "ORDER", "PURCHASE"
	ReferenceID   string
	Description   string
	CreatedBy     string
	CreatedAt     time.Time
}
