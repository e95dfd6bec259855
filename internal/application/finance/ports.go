package finance

import (
	"context"

	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando los
// repositorios de cuentas y asientos atados a esa tx. Crear un asiento y
// aplicar su efecto al saldo de la cuenta es una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// VoucherBuilder produce el comprobante XML de un asiento.
type VoucherBuilder interface {
	Build(tx *entity.Transaction, account *entity.Account) ([]byte, error)
}
