package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para cuentas contables.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByCode(code string) (*entity.Account, error)
	// ListTree devuelve las cuentas de primer nivel con sus hijas, por código.
	ListTree() ([]*entity.Account, error)
	Update(account *entity.Account) error
	// ApplyBalance suma delta (con signo) al saldo de la cuenta de forma
	// atómica en el almacén, sin leer-modificar-escribir.
	ApplyBalance(id string, delta decimal.Decimal) error
	Delete(id string) error
	CountChildren(id string) (int, error)
}

// TransactionRepository define el puerto de persistencia para asientos.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	List(txType string, limit, offset int) ([]*entity.Transaction, error)
	Count(txType string) (int, error)
	CountByAccount(accountID string) (int, error)
}
