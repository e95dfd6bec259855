package inventory

import (
	"context"

	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el ajuste de saldo y el
// registro en el libro de movimientos se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
