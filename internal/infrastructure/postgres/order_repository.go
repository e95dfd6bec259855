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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, customer_id, status, total_amount, discount, tax_rate, tax_amount, final_amount, order_date, delivery_date, delivery_address, note, sales_person_id, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Cabecera en orders, líneas en order_items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste cabecera y líneas juntas.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (id, order_number, customer_id, status, total_amount, discount, tax_rate, tax_amount, final_amount, order_date, delivery_date, delivery_address, note, sales_person_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.CustomerID, order.Status, order.TotalAmount,
		order.Discount, order.TaxRate, order.TaxAmount, order.FinalAmount, order.OrderDate,
		order.DeliveryDate, order.DeliveryAddress, order.Note, order.SalesPersonID,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(ctx, order.Items)
}

func (r *OrderRepo) insertItems(ctx context.Context, items []entity.OrderItem) error {
	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, discount, tax_rate, amount, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount,
			it.TaxRate, it.Amount, it.Note,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	var o entity.Order
	err := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.TotalAmount, &o.Discount,
		&o.TaxRate, &o.TaxAmount, &o.FinalAmount, &o.OrderDate, &o.DeliveryDate,
		&o.DeliveryAddress, &o.Note, &o.SalesPersonID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, discount, tax_rate, amount, note
		FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.Discount, &it.TaxRate, &it.Amount, &it.Note); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// UpdateHeader reemplaza cabecera y líneas (borra y reinserta las líneas).
// Solo editable en DRAFT; lo valida el caso de uso.
func (r *OrderRepo) UpdateHeader(order *entity.Order) error {
	ctx := context.Background()
	query := `
		UPDATE orders SET total_amount = $2, discount = $3, tax_rate = $4, tax_amount = $5,
			final_amount = $6, delivery_date = $7, delivery_address = $8, note = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.TotalAmount, order.Discount, order.TaxRate, order.TaxAmount,
		order.FinalAmount, order.DeliveryDate, order.DeliveryAddress, order.Note, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	return r.insertItems(ctx, order.Items)
}

// UpdateStatus cambia solo el estado.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdateStatusFrom cambia el estado solo si el actual coincide con from. Cero
// filas afectadas significa que otro actor ganó la carrera: ErrConflict.
func (r *OrderRepo) UpdateStatusFrom(id, from, to string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return fmt.Errorf("update order status from %s: %w", from, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete borra cabecera y líneas.
func (r *OrderRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List lista cabeceras (sin líneas) con búsqueda por número y filtro de estado.
func (r *OrderRepo) List(search, status string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR unaccent(lower(order_number)) LIKE '%'||$1||'%')
		  AND ($2 = '' OR status = $2)
		ORDER BY order_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, search, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.TotalAmount, &o.Discount,
			&o.TaxRate, &o.TaxAmount, &o.FinalAmount, &o.OrderDate, &o.DeliveryDate,
			&o.DeliveryAddress, &o.Note, &o.SalesPersonID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Count cuenta órdenes para la misma búsqueda de List.
func (r *OrderRepo) Count(search, status string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM orders
		WHERE ($1 = '' OR unaccent(lower(order_number)) LIKE '%'||$1||'%')
		  AND ($2 = '' OR status = $2)`, search, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

// CountByCustomer cuenta órdenes que referencian a un cliente.
func (r *OrderRepo) CountByCustomer(customerID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM orders WHERE customer_id = $1`, customerID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count orders by customer: %w", err)
	}
	return total, nil
}
