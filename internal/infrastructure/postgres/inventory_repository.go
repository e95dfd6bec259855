package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, warehouse_id, quantity, reserved_qty, reorder_point, safety_stock, location, last_check_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.ReservedQty,
		&inv.ReorderPoint, &inv.SafetyStock, &inv.Location, &inv.LastCheckAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// GetByID obtiene un registro de inventario por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(context.Background(),
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// GetByPair obtiene el registro del par producto+bodega.
func (r *InventoryRepo) GetByPair(productID, warehouseID string) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(context.Background(),
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID))
	if err != nil {
		return nil, fmt.Errorf("get inventory pair: %w", err)
	}
	return inv, nil
}

// GetPairForUpdate bloquea la fila del par (SELECT FOR UPDATE). Solo tiene
// sentido con un Querier atado a transacción.
func (r *InventoryRepo) GetPairForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(context.Background(),
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`,
		productID, warehouseID))
	if err != nil {
		return nil, fmt.Errorf("lock inventory pair: %w", err)
	}
	return inv, nil
}

// Create persiste un registro de inventario nuevo.
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity, reserved_qty, reorder_point, safety_stock, location, last_check_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ProductID, inv.WarehouseID, inv.Quantity, inv.ReservedQty,
		inv.ReorderPoint, inv.SafetyStock, inv.Location, inv.LastCheckAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// UpdateQuantity fija el saldo del registro. Solo lo llama el motor de
// ajustes dentro de una transacción con la fila bloqueada.
func (r *InventoryRepo) UpdateQuantity(id string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// UpdateMeta actualiza solo los metadatos del registro, jamás la cantidad.
func (r *InventoryRepo) UpdateMeta(inv *entity.Inventory) error {
	query := `
		UPDATE inventory SET reorder_point = $2, safety_stock = $3, location = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ReorderPoint, inv.SafetyStock, inv.Location, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory meta: %w", err)
	}
	return nil
}

// Delete elimina un registro de inventario. Los movimientos quedan: la FK
// inventory_id pasa a NULL (ON DELETE SET NULL).
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

// List lista registros con búsqueda por nombre/SKU del producto y filtro de bodega.
func (r *InventoryRepo) List(search, warehouseID string, limit, offset int) ([]*entity.Inventory, error) {
	query := `
		SELECT i.id, i.product_id, i.warehouse_id, i.quantity, i.reserved_qty, i.reorder_point, i.safety_stock, i.location, i.last_check_at, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE ($1 = '' OR unaccent(lower(p.name)) LIKE '%'||$1||'%' OR unaccent(lower(p.sku)) LIKE '%'||$1||'%')
		  AND ($2 = '' OR i.warehouse_id = $2)
		ORDER BY i.updated_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, search, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.ReservedQty,
			&inv.ReorderPoint, &inv.SafetyStock, &inv.Location, &inv.LastCheckAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Count cuenta registros para la misma búsqueda de List.
func (r *InventoryRepo) Count(search, warehouseID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*)
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE ($1 = '' OR unaccent(lower(p.name)) LIKE '%'||$1||'%' OR unaccent(lower(p.sku)) LIKE '%'||$1||'%')
		  AND ($2 = '' OR i.warehouse_id = $2)`, search, warehouseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count inventory: %w", err)
	}
	return total, nil
}

// CountByProduct cuenta registros que referencian a un producto.
func (r *InventoryRepo) CountByProduct(productID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count inventory by product: %w", err)
	}
	return total, nil
}

// CountByWarehouse cuenta registros que referencian a una bodega.
func (r *InventoryRepo) CountByWarehouse(warehouseID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory WHERE warehouse_id = $1`, warehouseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count inventory by warehouse: %w", err)
	}
	return total, nil
}
