package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var (
	_ repository.AccountRepository     = (*AccountRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
)

const accountColumns = `id, code, name, type, parent_id, balance, is_system, created_at, updated_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.ParentID, &a.Balance,
		&a.IsSystem, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, code, name, type, parent_id, balance, is_system, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Code, account.Name, account.Type, account.ParentID,
		account.Balance, account.IsSystem, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// GetByCode obtiene una cuenta por código.
func (r *AccountRepo) GetByCode(code string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(context.Background(),
		`SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get account by code: %w", err)
	}
	return a, nil
}

// ListTree devuelve las cuentas de primer nivel con sus hijas, por código.
// El plan admite un solo nivel de anidación, así que basta una pasada.
func (r *AccountRepo) ListTree() ([]*entity.Account, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+accountColumns+` FROM accounts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var all []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.ParentID, &a.Balance,
			&a.IsSystem, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		all = append(all, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Account, len(all))
	var roots []*entity.Account
	for _, a := range all {
		if a.ParentID == nil {
			byID[a.ID] = a
			roots = append(roots, a)
		}
	}
	for _, a := range all {
		if a.ParentID != nil {
			if parent, ok := byID[*a.ParentID]; ok {
				parent.Children = append(parent.Children, *a)
			}
		}
	}
	return roots, nil
}

// Update actualiza nombre de la cuenta. Código, tipo y saldo no se tocan aquí.
func (r *AccountRepo) Update(account *entity.Account) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE accounts SET name = $2, updated_at = $3 WHERE id = $1`,
		account.ID, account.Name, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// ApplyBalance suma delta al saldo en el propio UPDATE: la escritura es
// relativa, así dos asientos concurrentes sobre la misma cuenta no se pisan.
func (r *AccountRepo) ApplyBalance(id string, delta decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE accounts SET balance = balance + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("apply account balance: %w", err)
	}
	return nil
}

// Delete elimina una cuenta por ID.
func (r *AccountRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// CountChildren cuenta las cuentas hijas directas.
func (r *AccountRepo) CountChildren(id string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM accounts WHERE parent_id = $1`, id).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count account children: %w", err)
	}
	return total, nil
}

const transactionColumns = `id, voucher_no, date, type, account_id, amount, direction, reference_type, reference_id, description, created_by, created_at`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
// Los asientos son append-only.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia para asientos.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un asiento.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, voucher_no, date, type, account_id, amount, direction, reference_type, reference_id, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.VoucherNo, tx.Date, tx.Type, tx.AccountID, tx.Amount, tx.Direction,
		tx.ReferenceType, tx.ReferenceID, tx.Description, tx.CreatedBy, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.q.QueryRow(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id).Scan(
		&tx.ID, &tx.VoucherNo, &tx.Date, &tx.Type, &tx.AccountID, &tx.Amount, &tx.Direction,
		&tx.ReferenceType, &tx.ReferenceID, &tx.Description, &tx.CreatedBy, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// List lista asientos con filtro por tipo, más recientes primero.
func (r *TransactionRepo) List(txType string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1 = '' OR type = $1)
		ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, txType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(&tx.ID, &tx.VoucherNo, &tx.Date, &tx.Type, &tx.AccountID, &tx.Amount,
			&tx.Direction, &tx.ReferenceType, &tx.ReferenceID, &tx.Description, &tx.CreatedBy, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}

// Count cuenta asientos para el mismo filtro de List.
func (r *TransactionRepo) Count(txType string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM transactions WHERE ($1 = '' OR type = $1)`, txType).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}

// CountByAccount cuenta asientos que referencian a una cuenta.
func (r *TransactionRepo) CountByAccount(accountID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transactions by account: %w", err)
	}
	return total, nil
}
