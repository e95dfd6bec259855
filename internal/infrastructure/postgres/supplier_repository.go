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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, code, name, contact_person, email, phone, address, tax_number, bank_account, lead_time, min_order_qty, is_active, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
		&s.TaxNumber, &s.BankAccount, &s.LeadTime, &s.MinOrderQty, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, code, name, contact_person, email, phone, address, tax_number, bank_account, lead_time, min_order_qty, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Code, supplier.Name, supplier.ContactPerson, supplier.Email,
		supplier.Phone, supplier.Address, supplier.TaxNumber, supplier.BankAccount,
		supplier.LeadTime, supplier.MinOrderQty, supplier.IsActive, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// GetByCode obtiene un proveedor por código.
func (r *SupplierRepo) GetByCode(code string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM suppliers WHERE code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get supplier by code: %w", err)
	}
	return s, nil
}

// Update actualiza un proveedor. El código no se toca.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6,
			tax_number = $7, bank_account = $8, lead_time = $9, min_order_qty = $10,
			is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.ContactPerson, supplier.Email, supplier.Phone,
		supplier.Address, supplier.TaxNumber, supplier.BankAccount, supplier.LeadTime,
		supplier.MinOrderQty, supplier.IsActive, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List lista proveedores con búsqueda por nombre/código.
func (r *SupplierRepo) List(search string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers
		WHERE ($1 = '' OR unaccent(lower(name)) LIKE '%'||$1||'%' OR unaccent(lower(code)) LIKE '%'||$1||'%')
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
			&s.TaxNumber, &s.BankAccount, &s.LeadTime, &s.MinOrderQty, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta proveedores para la misma búsqueda de List.
func (r *SupplierRepo) Count(search string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM suppliers
		WHERE ($1 = '' OR unaccent(lower(name)) LIKE '%'||$1||'%' OR unaccent(lower(code)) LIKE '%'||$1||'%')`,
		search).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return total, nil
}

// Delete elimina un proveedor por ID.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
