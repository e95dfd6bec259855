package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, inventory_id, product_id, warehouse_id, kind, quantity, operator_id, note, created_at`

// InventoryMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Append-only: jamás se actualiza ni borra una fila.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create anota un movimiento en el libro.
func (r *InventoryMovementRepo) Create(mov *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, inventory_id, product_id, warehouse_id, kind, quantity, operator_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.InventoryID, mov.ProductID, mov.WarehouseID, mov.Kind,
		mov.Quantity, mov.OperatorID, mov.Note, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByInventory devuelve los movimientos de un registro, más recientes primero.
func (r *InventoryMovementRepo) ListByInventory(inventoryID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE inventory_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, inventoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.ProductID, &m.WarehouseID, &m.Kind,
			&m.Quantity, &m.OperatorID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListRecent devuelve los últimos movimientos globales, más recientes primero.
func (r *InventoryMovementRepo) ListRecent(limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.ProductID, &m.WarehouseID, &m.Kind,
			&m.Quantity, &m.OperatorID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
