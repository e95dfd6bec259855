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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, purchase_number, supplier_id, status, total_amount, tax_rate, tax_amount, final_amount, order_date, expected_date, received_date, warehouse_id, note, purchaser_id, created_at, updated_at`

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
// Cabecera en purchases, líneas en purchase_items.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste cabecera y líneas juntas.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (id, purchase_number, supplier_id, status, total_amount, tax_rate, tax_amount, final_amount, order_date, expected_date, received_date, warehouse_id, note, purchaser_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.PurchaseNumber, purchase.SupplierID, purchase.Status,
		purchase.TotalAmount, purchase.TaxRate, purchase.TaxAmount, purchase.FinalAmount,
		purchase.OrderDate, purchase.ExpectedDate, purchase.ReceivedDate, purchase.WarehouseID,
		purchase.Note, purchase.PurchaserID, purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return r.insertItems(ctx, purchase.Items)
}

func (r *PurchaseRepo) insertItems(ctx context.Context, items []entity.PurchaseItem) error {
	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_price, tax_rate, amount, received_qty, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.UnitPrice, it.TaxRate,
			it.Amount, it.ReceivedQty, it.Note,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus líneas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.get(id, false)
}

// GetByIDForUpdate obtiene la compra bloqueando la cabecera (FOR UPDATE).
// Se usa dentro de una tx para revalidar estado y pendientes con datos
// frescos antes de registrar una recepción.
func (r *PurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	return r.get(id, true)
}

func (r *PurchaseRepo) get(id string, forUpdate bool) (*entity.Purchase, error) {
	ctx := context.Background()
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PurchaseNumber, &p.SupplierID, &p.Status, &p.TotalAmount, &p.TaxRate,
		&p.TaxAmount, &p.FinalAmount, &p.OrderDate, &p.ExpectedDate, &p.ReceivedDate,
		&p.WarehouseID, &p.Note, &p.PurchaserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_price, tax_rate, amount, received_qty, note
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.TaxRate, &it.Amount, &it.ReceivedQty, &it.Note); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	return &p, rows.Err()
}

// UpdateHeader reemplaza cabecera y líneas (borra y reinserta las líneas).
// Solo editable en DRAFT; lo valida el caso de uso.
func (r *PurchaseRepo) UpdateHeader(purchase *entity.Purchase) error {
	ctx := context.Background()
	query := `
		UPDATE purchases SET total_amount = $2, tax_rate = $3, tax_amount = $4, final_amount = $5,
			expected_date = $6, warehouse_id = $7, note = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.TotalAmount, purchase.TaxRate, purchase.TaxAmount,
		purchase.FinalAmount, purchase.ExpectedDate, purchase.WarehouseID, purchase.Note,
		purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, purchase.ID); err != nil {
		return fmt.Errorf("clear purchase items: %w", err)
	}
	return r.insertItems(ctx, purchase.Items)
}

// UpdateStatus cambia solo el estado.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}

// UpdateReceived fija estado, fecha de recepción y received_qty por línea.
// Lo llama la recepción dentro de una transacción.
func (r *PurchaseRepo) UpdateReceived(purchase *entity.Purchase) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		UPDATE purchases SET status = $2, received_date = $3, updated_at = $4 WHERE id = $1`,
		purchase.ID, purchase.Status, purchase.ReceivedDate, purchase.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase received: %w", err)
	}
	for _, it := range purchase.Items {
		_, err := r.q.Exec(ctx,
			`UPDATE purchase_items SET received_qty = $2 WHERE id = $1`, it.ID, it.ReceivedQty)
		if err != nil {
			return fmt.Errorf("update purchase item received: %w", err)
		}
	}
	return nil
}

// Delete borra cabecera y líneas.
func (r *PurchaseRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// List lista cabeceras (sin líneas) con búsqueda por número y filtro de estado.
func (r *PurchaseRepo) List(search, status string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE ($1 = '' OR unaccent(lower(purchase_number)) LIKE '%'||$1||'%')
		  AND ($2 = '' OR status = $2)
		ORDER BY order_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, search, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.PurchaseNumber, &p.SupplierID, &p.Status, &p.TotalAmount, &p.TaxRate,
			&p.TaxAmount, &p.FinalAmount, &p.OrderDate, &p.ExpectedDate, &p.ReceivedDate,
			&p.WarehouseID, &p.Note, &p.PurchaserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta compras para la misma búsqueda de List.
func (r *PurchaseRepo) Count(search, status string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM purchases
		WHERE ($1 = '' OR unaccent(lower(purchase_number)) LIKE '%'||$1||'%')
		  AND ($2 = '' OR status = $2)`, search, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count purchases: %w", err)
	}
	return total, nil
}

// CountBySupplier cuenta compras que referencian a un proveedor.
func (r *PurchaseRepo) CountBySupplier(supplierID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM purchases WHERE supplier_id = $1`, supplierID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count purchases by supplier: %w", err)
	}
	return total, nil
}
