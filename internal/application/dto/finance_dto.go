package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRequest body para POST /api/accounts.
type AccountRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"` // ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE
	ParentID *string `json:"parentId,omitempty"`
}

// AccountResponse cuenta serializada (con hijas en el árbol).
type AccountResponse struct {
	ID       string            `json:"id"`
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	ParentID *string           `json:"parentId,omitempty"`
	Balance  decimal.Decimal   `json:"balance"`
	IsSystem bool              `json:"isSystem"`
	Children []AccountResponse `json:"children,omitempty"`
}

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	Date          *time.Time      `json:"date,omitempty"` // nil = hoy
	Type          string          `json:"type"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"` // DEBIT | CREDIT
	Description   string          `json:"description"`
	ReferenceType string          `json:"referenceType,omitempty"`
	ReferenceID   string          `json:"referenceId,omitempty"`
}

// TransactionResponse asiento serializado.
type TransactionResponse struct {
	ID            string          `json:"id"`
	VoucherNo     string          `json:"voucherNo"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	ReferenceType string          `json:"referenceType,omitempty"`
	ReferenceID   string          `json:"referenceId,omitempty"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}
