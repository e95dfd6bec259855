package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appfinance "github.com/tu-usuario/erp-pro/internal/application/finance"
	"github.com/tu-usuario/erp-pro/internal/application/inventory"
	"github.com/tu-usuario/erp-pro/internal/application/purchasing"
	"github.com/tu-usuario/erp-pro/internal/application/sales"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var (
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ sales.TxRunner      = (*SalesTxRunner)(nil)
	_ purchasing.TxRunner = (*PurchaseTxRunner)(nil)
	_ appfinance.TxRunner = (*FinanceTxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios de inventario atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewInventoryMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SalesTxRunner transacciones para la confirmación de órdenes de venta:
// descuento de stock y cambio de estado en una sola unidad.
type SalesTxRunner struct {
	pool *pgxpool.Pool
}

// NewSalesTxRunner construye el runner con el pool.
func NewSalesTxRunner(pool *pgxpool.Pool) *SalesTxRunner {
	return &SalesTxRunner{pool: pool}
}

// Run inicia una transacción con repos de órdenes e inventario.
func (r *SalesTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewInventoryRepository(tx), NewInventoryMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PurchaseTxRunner transacciones para la recepción de compras: ingreso de
// stock y actualización de la compra en una sola unidad.
type PurchaseTxRunner struct {
	pool *pgxpool.Pool
}

// NewPurchaseTxRunner construye el runner con el pool.
func NewPurchaseTxRunner(pool *pgxpool.Pool) *PurchaseTxRunner {
	return &PurchaseTxRunner{pool: pool}
}

// Run inicia una transacción con repos de compras e inventario.
func (r *PurchaseTxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseRepository(tx), NewInventoryRepository(tx), NewInventoryMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// FinanceTxRunner transacciones para asientos: crear el asiento y aplicar el
// saldo de la cuenta en una sola unidad.
type FinanceTxRunner struct {
	pool *pgxpool.Pool
}

// NewFinanceTxRunner construye el runner con el pool.
func NewFinanceTxRunner(pool *pgxpool.Pool) *FinanceTxRunner {
	return &FinanceTxRunner{pool: pool}
}

// Run inicia una transacción con repos de cuentas y asientos.
func (r *FinanceTxRunner) Run(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAccountRepository(tx), NewTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
