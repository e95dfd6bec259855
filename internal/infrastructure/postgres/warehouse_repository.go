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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, code, name, address, contact, phone, manager_id, is_active, created_at, updated_at`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Contact, &w.Phone,
		&w.ManagerID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, address, contact, phone, manager_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Address, warehouse.Contact,
		warehouse.Phone, warehouse.ManagerID, warehouse.IsActive, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(context.Background(),
		`SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// GetByCode obtiene una bodega por código.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(context.Background(),
		`SELECT `+warehouseColumns+` FROM warehouses WHERE code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get warehouse by code: %w", err)
	}
	return w, nil
}

// Update actualiza una bodega. El código no se toca.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, address = $3, contact = $4, phone = $5,
			manager_id = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.Contact, warehouse.Phone,
		warehouse.ManagerID, warehouse.IsActive, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista bodegas con búsqueda por nombre/código.
func (r *WarehouseRepo) List(search string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE ($1 = '' OR unaccent(lower(name)) LIKE '%'||$1||'%' OR unaccent(lower(code)) LIKE '%'||$1||'%')
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Contact, &w.Phone,
			&w.ManagerID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Count cuenta bodegas para la misma búsqueda de List.
func (r *WarehouseRepo) Count(search string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM warehouses
		WHERE ($1 = '' OR unaccent(lower(name)) LIKE '%'||$1||'%' OR unaccent(lower(code)) LIKE '%'||$1||'%')`,
		search).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return total, nil
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}
