package purchasing

import (
	"context"

	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando los
// repositorios de compras e inventario atados a esa tx. La recepción de una
// compra ingresa stock y actualiza la compra en la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// Notifier emite notificaciones de negocio (best effort).
type Notifier interface {
	Notify(userID, kind, title, content, link string)
}
