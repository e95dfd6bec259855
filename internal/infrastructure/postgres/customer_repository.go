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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, code, name, type, email, phone, address, tax_number, bank_account, credit_limit, credit_days, is_active, created_at, updated_at`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Type, &c.Email, &c.Phone, &c.Address,
		&c.TaxNumber, &c.BankAccount, &c.CreditLimit, &c.CreditDays, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, code, name, type, email, phone, address, tax_number, bank_account, credit_limit, credit_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Code, customer.Name, customer.Type, customer.Email, customer.Phone,
		customer.Address, customer.TaxNumber, customer.BankAccount, customer.CreditLimit,
		customer.CreditDays, customer.IsActive, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByCode obtiene un cliente por código.
func (r *CustomerRepo) GetByCode(code string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get customer by code: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente. Código y tipo no se tocan.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, phone = $4, address = $5, tax_number = $6,
			bank_account = $7, credit_limit = $8, credit_days = $9, is_active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address,
		customer.TaxNumber, customer.BankAccount, customer.CreditLimit, customer.CreditDays,
		customer.IsActive, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List lista clientes con búsqueda por nombre/código.
func (r *CustomerRepo) List(search string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR unaccent(lower(name)) LIKE '%'||$1||'%' OR unaccent(lower(code)) LIKE '%'||$1||'%')
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Type, &c.Email, &c.Phone, &c.Address,
			&c.TaxNumber, &c.BankAccount, &c.CreditLimit, &c.CreditDays, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Count cuenta clientes para la misma búsqueda de List.
func (r *CustomerRepo) Count(search string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM customers
		WHERE ($1 = '' OR unaccent(lower(name)) LIKE '%'||$1||'%' OR unaccent(lower(code)) LIKE '%'||$1||'%')`,
		search).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return total, nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
