package sales

import (
	"context"

	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando los
// repositorios de órdenes e inventario atados a esa tx. La confirmación de
// una orden descuenta stock y cambia estado en la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// PDFGenerator produce el PDF imprimible de una orden.
type PDFGenerator interface {
	OrderPDF(order *entity.Order, customer *entity.Customer, products map[string]*entity.Product) ([]byte, error)
}

// Notifier emite notificaciones de negocio (best effort).
type Notifier interface {
	Notify(userID, kind, title, content, link string)
}
