package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/docnum"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	domfin "github.com/tu-usuario/erp-pro/internal/domain/finance"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// UseCase finanzas: plan de cuentas jerárquico y asientos simples con
// numeración de comprobante y aplicación atómica al saldo de la cuenta.
type UseCase struct {
	txRunner    TxRunner
	accountRepo repository.AccountRepository
	txRepo      repository.TransactionRepository
	counterRepo repository.DocumentCounterRepository
	voucher     VoucherBuilder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	counterRepo repository.DocumentCounterRepository,
	voucher VoucherBuilder,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		counterRepo: counterRepo,
		voucher:     voucher,
	}
}

// ─── Cuentas ─────────────────────────────────────────────────────────────────

// CreateAccount da de alta una cuenta; si cuelga de un padre, el tipo debe
// coincidir con el del padre.
func (uc *UseCase) CreateAccount(in dto.AccountRequest) (*dto.AccountResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.Name == "" || !entity.ValidAccountType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.accountRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != nil {
		parent, err := uc.accountRepo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.Type != in.Type {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	account := &entity.Account{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  in.ParentID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// AccountTree devuelve el plan de cuentas como árbol por código.
func (uc *UseCase) AccountTree() ([]dto.AccountResponse, error) {
	roots, err := uc.accountRepo.ListTree()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(roots))
	for _, a := range roots {
		out = append(out, *toAccountResponse(a))
	}
	return out, nil
}

// DeleteAccount elimina una cuenta sin hijas, sin asientos y no sembrada.
func (uc *UseCase) DeleteAccount(id string) error {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	if account.IsSystem {
		return domain.ErrForbidden
	}
	children, err := uc.accountRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return domain.ErrHasReferences
	}
	refs, err := uc.txRepo.CountByAccount(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrHasReferences
	}
	return uc.accountRepo.Delete(id)
}

// ─── Asientos ────────────────────────────────────────────────────────────────

// CreateTransaction crea un asiento con comprobante V{YYYYMMDD}{seq} y aplica
// su efecto al saldo de la cuenta según tipo y dirección, todo en una
// transacción: o quedan asiento y saldo, o ninguno.
func (uc *UseCase) CreateTransaction(ctx context.Context, createdBy string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !entity.ValidTransactionType(in.Type) || in.AccountID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction != entity.DirectionDebit && in.Direction != entity.DirectionCredit {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	account, err := uc.accountRepo.GetByID(in.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	seq, err := uc.counterRepo.Next(docnum.PrefixVoucher, date)
	if err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		VoucherNo:     docnum.Format(docnum.PrefixVoucher, date, seq),
		Date:          date,
		Type:          in.Type,
		AccountID:     in.AccountID,
		Amount:        in.Amount,
		Direction:     in.Direction,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Description:   in.Description,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		accountRepo repository.AccountRepository,
		txRepo repository.TransactionRepository,
	) error {
		if err := txRepo.Create(tx); err != nil {
			return err
		}
		// Escritura relativa: el saldo leído fuera de la tx puede estar
		// desfasado si otro asiento entró en medio; el delta no.
		delta := domfin.BalanceDelta(account.Type, tx.Direction, tx.Amount)
		return accountRepo.ApplyBalance(account.ID, delta)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// GetTransaction devuelve un asiento por id.
func (uc *UseCase) GetTransaction(id string) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(tx), nil
}

// ListTransactions lista asientos con filtro por tipo.
func (uc *UseCase) ListTransactions(page dto.PageRequest, txType string) (*dto.ListResponse[dto.TransactionResponse], error) {
	page.Normalize()
	if txType != "" && !entity.ValidTransactionType(txType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.txRepo.List(txType, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.txRepo.Count(txType)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *toTransactionResponse(tx))
	}
	return dto.NewListResponse(items, total, page), nil
}

// VoucherXML genera el comprobante XML de un asiento.
func (uc *UseCase) VoucherXML(id string) ([]byte, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	account, err := uc.accountRepo.GetByID(tx.AccountID)
	if err != nil {
		return nil, err
	}
	return uc.voucher.Build(tx, account)
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	children := make([]dto.AccountResponse, 0, len(a.Children))
	for i := range a.Children {
		children = append(children, *toAccountResponse(&a.Children[i]))
	}
	if len(children) == 0 {
		children = nil
	}
	return &dto.AccountResponse{
		ID:       a.ID,
		Code:     a.Code,
		Name:     a.Name,
		Type:     a.Type,
		ParentID: a.ParentID,
		Balance:  a.Balance,
		IsSystem: a.IsSystem,
		Children: children,
	}
}

func toTransactionResponse(tx *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:            tx.ID,
		VoucherNo:     tx.VoucherNo,
		Date:          tx.Date,
		Type:          tx.Type,
		AccountID:     tx.AccountID,
		Amount:        tx.Amount,
		Direction:     tx.Direction,
		ReferenceType: tx.ReferenceType,
		ReferenceID:   tx.ReferenceID,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}
