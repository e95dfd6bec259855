package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

type fakeAccountRepo struct {
	repository.AccountRepository
	byID     map[string]*entity.Account
	children map[string]int
	txCount  map[string]int
}

func (f *fakeAccountRepo) Create(a *entity.Account) error {
	cp := *a
	f.byID[a.ID] = &cp
	if a.ParentID != nil {
		f.children[*a.ParentID]++
	}
	return nil
}

func (f *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByCode(code string) (*entity.Account, error) {
	for _, a := range f.byID {
		if a.Code == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ApplyBalance(id string, delta decimal.Decimal) error {
	f.byID[id].Balance = f.byID[id].Balance.Add(delta)
	return nil
}

func (f *fakeAccountRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeAccountRepo) CountChildren(id string) (int, error) { return f.children[id], nil }

type fakeTxRepo struct {
	repository.TransactionRepository
	byID    map[string]*entity.Transaction
	failing bool
}

func (f *fakeTxRepo) Create(tx *entity.Transaction) error {
	if f.failing {
		return assert.AnError
	}
	cp := *tx
	f.byID[tx.ID] = &cp
	return nil
}

func (f *fakeTxRepo) GetByID(id string) (*entity.Transaction, error) {
	if tx, ok := f.byID[id]; ok {
		return tx, nil
	}
	return nil, nil
}

func (f *fakeTxRepo) CountByAccount(accountID string) (int, error) {
	n := 0
	for _, tx := range f.byID {
		if tx.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

type fakeCounter struct{ seq int64 }

func (f *fakeCounter) Next(prefix string, day time.Time) (int64, error) {
	f.seq++
	return f.seq, nil
}

// fakeTx simula atomicidad restaurando saldos cuando fn falla. beforeRun, si
// está presente, corre justo antes de fn y permite intercalar un escritor
// concurrente entre la lectura de la cuenta y la transacción.
type fakeTx struct {
	accounts  *fakeAccountRepo
	txs       *fakeTxRepo
	beforeRun func()
}

func (f *fakeTx) Run(_ context.Context, fn func(
	repository.AccountRepository, repository.TransactionRepository) error) error {
	if f.beforeRun != nil {
		f.beforeRun()
	}
	snap := make(map[string]decimal.Decimal, len(f.accounts.byID))
	for id, a := range f.accounts.byID {
		snap[id] = a.Balance
	}
	txLen := len(f.txs.byID)
	if err := fn(f.accounts, f.txs); err != nil {
		for id, b := range snap {
			if a, ok := f.accounts.byID[id]; ok {
				a.Balance = b
			}
		}
		_ = txLen
		return err
	}
	return nil
}

type env struct {
	uc       *UseCase
	accounts *fakeAccountRepo
	txs      *fakeTxRepo
	runner   *fakeTx
}

func newEnv() *env {
	accounts := &fakeAccountRepo{byID: map[string]*entity.Account{}, children: map[string]int{}, txCount: map[string]int{}}
	txs := &fakeTxRepo{byID: map[string]*entity.Transaction{}}
	runner := &fakeTx{accounts: accounts, txs: txs}
	uc := NewUseCase(runner, accounts, txs, &fakeCounter{}, nil)
	return &env{uc: uc, accounts: accounts, txs: txs, runner: runner}
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func seedAccount(e *env, id, code, typ string, balance string) {
	e.accounts.byID[id] = &entity.Account{ID: id, Code: code, Type: typ, Balance: d(balance)}
}

func TestCreateAccount(t *testing.T) {
	e := newEnv()

	out, err := e.uc.CreateAccount(dto.AccountRequest{Code: "1000", Name: "Caja", Type: entity.AccountTypeAsset})
	require.NoError(t, err)
	assert.True(t, out.Balance.IsZero())

	_, err = e.uc.CreateAccount(dto.AccountRequest{Code: "1000", Name: "Otra", Type: entity.AccountTypeAsset})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "código duplicado")

	// la hija hereda obligatoriamente el tipo del padre
	_, err = e.uc.CreateAccount(dto.AccountRequest{Code: "1010", Name: "Bancos", Type: entity.AccountTypeLiability, ParentID: &out.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	child, err := e.uc.CreateAccount(dto.AccountRequest{Code: "1010", Name: "Bancos", Type: entity.AccountTypeAsset, ParentID: &out.ID})
	require.NoError(t, err)
	assert.Equal(t, out.ID, *child.ParentID)

	_, err = e.uc.CreateAccount(dto.AccountRequest{Code: "9999", Name: "X", Type: "WEIRD"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateTransaction_AplicaSaldoPorNaturaleza(t *testing.T) {
	cases := []struct {
		name      string
		accType   string
		direction string
		want      string // saldo esperado partiendo de 100, monto 40
	}{
		{"débito en activo suma", entity.AccountTypeAsset, entity.DirectionDebit, "140"},
		{"crédito en activo resta", entity.AccountTypeAsset, entity.DirectionCredit, "60"},
		{"débito en gasto suma", entity.AccountTypeExpense, entity.DirectionDebit, "140"},
		{"crédito en ingreso suma", entity.AccountTypeRevenue, entity.DirectionCredit, "140"},
		{"débito en ingreso resta", entity.AccountTypeRevenue, entity.DirectionDebit, "60"},
		{"crédito en pasivo suma", entity.AccountTypeLiability, entity.DirectionCredit, "140"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			seedAccount(e, "acc-1", "1000", tc.accType, "100")

			out, err := e.uc.CreateTransaction(context.Background(), "u-1", dto.CreateTransactionRequest{
				Type: entity.TxTypeOtherIncome, AccountID: "acc-1",
				Amount: d("40"), Direction: tc.direction, Description: "x",
			})
			require.NoError(t, err)
			assert.True(t, e.accounts.byID["acc-1"].Balance.Equal(d(tc.want)),
				"saldo %s", e.accounts.byID["acc-1"].Balance)
			assert.NotEmpty(t, out.VoucherNo)
		})
	}
}

// La cuenta se lee antes de abrir la transacción; si otro asiento entra en
// medio, el saldo de esa lectura queda desfasado. La escritura debe ser
// relativa (saldo = saldo + delta) para que el asiento intercalado no se
// pierda.
func TestCreateTransaction_NoPisaAsientosConcurrentes(t *testing.T) {
	e := newEnv()
	seedAccount(e, "acc-1", "1000", entity.AccountTypeAsset, "100")

	// Otro asiento aplica +200 entre la lectura de la cuenta y nuestra tx.
	e.runner.beforeRun = func() {
		e.accounts.byID["acc-1"].Balance = e.accounts.byID["acc-1"].Balance.Add(d("200"))
	}

	_, err := e.uc.CreateTransaction(context.Background(), "u-1", dto.CreateTransactionRequest{
		Type: entity.TxTypeOtherIncome, AccountID: "acc-1",
		Amount: d("40"), Direction: entity.DirectionDebit, Description: "x",
	})
	require.NoError(t, err)
	assert.True(t, e.accounts.byID["acc-1"].Balance.Equal(d("340")),
		"saldo %s: el +200 intercalado debe sobrevivir", e.accounts.byID["acc-1"].Balance)
}

func TestCreateTransaction_NumeracionDeComprobante(t *testing.T) {
	e := newEnv()
	seedAccount(e, "acc-1", "1000", entity.AccountTypeAsset, "0")
	today := time.Now().Format("20060102")

	first, err := e.uc.CreateTransaction(context.Background(), "u-1", dto.CreateTransactionRequest{
		Type: entity.TxTypeOtherIncome, AccountID: "acc-1", Amount: d("10"), Direction: entity.DirectionDebit,
	})
	require.NoError(t, err)
	second, err := e.uc.CreateTransaction(context.Background(), "u-1", dto.CreateTransactionRequest{
		Type: entity.TxTypeOtherIncome, AccountID: "acc-1", Amount: d("10"), Direction: entity.DirectionDebit,
	})
	require.NoError(t, err)

	assert.Equal(t, "V"+today+"0001", first.VoucherNo)
	assert.Equal(t, "V"+today+"0002", second.VoucherNo)
}

func TestCreateTransaction_FalloNoDejaSaldoAplicado(t *testing.T) {
	e := newEnv()
	seedAccount(e, "acc-1", "1000", entity.AccountTypeAsset, "100")
	e.txs.failing = true

	_, err := e.uc.CreateTransaction(context.Background(), "u-1", dto.CreateTransactionRequest{
		Type: entity.TxTypeOtherIncome, AccountID: "acc-1", Amount: d("40"), Direction: entity.DirectionDebit,
	})
	require.Error(t, err)
	assert.True(t, e.accounts.byID["acc-1"].Balance.Equal(d("100")), "el saldo no cambia si el asiento no persiste")
}

func TestCreateTransaction_Validaciones(t *testing.T) {
	e := newEnv()
	seedAccount(e, "acc-1", "1000", entity.AccountTypeAsset, "0")
	ctx := context.Background()

	_, err := e.uc.CreateTransaction(ctx, "u", dto.CreateTransactionRequest{Type: "NOPE", AccountID: "acc-1", Amount: d("1"), Direction: entity.DirectionDebit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.uc.CreateTransaction(ctx, "u", dto.CreateTransactionRequest{Type: entity.TxTypeOtherIncome, AccountID: "acc-1", Amount: d("0"), Direction: entity.DirectionDebit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero")
	_, err = e.uc.CreateTransaction(ctx, "u", dto.CreateTransactionRequest{Type: entity.TxTypeOtherIncome, AccountID: "acc-1", Amount: d("-5"), Direction: entity.DirectionDebit})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto negativo")
	_, err = e.uc.CreateTransaction(ctx, "u", dto.CreateTransactionRequest{Type: entity.TxTypeOtherIncome, AccountID: "acc-1", Amount: d("1"), Direction: "SIDEWAYS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.uc.CreateTransaction(ctx, "u", dto.CreateTransactionRequest{Type: entity.TxTypeOtherIncome, AccountID: "ghost", Amount: d("1"), Direction: entity.DirectionDebit})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	e := newEnv()
	seedAccount(e, "acc-sys", "1000", entity.AccountTypeAsset, "0")
	e.accounts.byID["acc-sys"].IsSystem = true
	assert.ErrorIs(t, e.uc.DeleteAccount("acc-sys"), domain.ErrForbidden, "cuenta sembrada")

	seedAccount(e, "acc-used", "2000", entity.AccountTypeAsset, "0")
	e.txs.byID["tx-1"] = &entity.Transaction{ID: "tx-1", AccountID: "acc-used"}
	assert.ErrorIs(t, e.uc.DeleteAccount("acc-used"), domain.ErrHasReferences, "con asientos")

	seedAccount(e, "acc-parent", "3000", entity.AccountTypeAsset, "0")
	e.accounts.children["acc-parent"] = 1
	assert.ErrorIs(t, e.uc.DeleteAccount("acc-parent"), domain.ErrHasReferences, "con hijas")

	seedAccount(e, "acc-free", "4000", entity.AccountTypeAsset, "0")
	require.NoError(t, e.uc.DeleteAccount("acc-free"))
	assert.ErrorIs(t, e.uc.DeleteAccount("acc-free"), domain.ErrNotFound)
}
