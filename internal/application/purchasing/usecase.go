package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/inventory"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/docnum"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/finance"
	dominv "github.com/tu-usuario/erp-pro/internal/domain/inventory"
	domstatus "github.com/tu-usuario/erp-pro/internal/domain/purchasing"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	"github.com/tu-usuario/erp-pro/pkg/textutil"
)

// UseCase órdenes de compra: creación con numeración atómica, edición solo
// en DRAFT, máquina de estados y recepción (total o parcial) que ingresa
// stock en la bodega destino.
type UseCase struct {
	txRunner      TxRunner
	purchaseRepo  repository.PurchaseRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	counterRepo   repository.DocumentCounterRepository
	notifier      Notifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	counterRepo repository.DocumentCounterRepository,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		counterRepo:   counterRepo,
		notifier:      notifier,
	}
}

func (uc *UseCase) buildItems(purchaseID string, in []dto.OrderItemRequest) ([]entity.PurchaseItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	total := decimal.Zero
	items := make([]entity.PurchaseItem, 0, len(in))
	for _, line := range in {
		if line.ProductID == "" || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		amount := finance.LineAmount(line.Quantity, line.UnitPrice, line.Discount)
		if amount.IsNegative() {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		items = append(items, entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchaseID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TaxRate:    line.TaxRate,
			Amount:     amount,
			Note:       line.Note,
		})
		total = total.Add(amount)
	}
	return items, total, nil
}

// Create crea una compra en DRAFT con número PO{YYYYMMDD}{seq} atómico.
func (uc *UseCase) Create(purchaserID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	purchaseID := uuid.New().String()
	items, total, err := uc.buildItems(purchaseID, in.Items)
	if err != nil {
		return nil, err
	}

	// Cantidad mínima de pedido del proveedor, sumada sobre las líneas.
	if supplier.MinOrderQty > 0 {
		var qty int64
		for _, it := range items {
			qty += it.Quantity
		}
		if qty < supplier.MinOrderQty {
			return nil, domain.ErrInvalidInput
		}
	}

	taxRate := finance.DefaultTaxRate
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		taxRate = *in.TaxRate
	}
	tax := finance.Tax(total, taxRate)
	final := finance.FinalAmount(total, decimal.Zero, tax)

	now := time.Now()
	seq, err := uc.counterRepo.Next(docnum.PrefixPurchase, now)
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		ID:             purchaseID,
		PurchaseNumber: docnum.Format(docnum.PrefixPurchase, now, seq),
		SupplierID:     in.SupplierID,
		Status:         entity.PurchaseStatusDraft,
		TotalAmount:    total,
		TaxRate:        taxRate,
		TaxAmount:      tax,
		FinalAmount:    final,
		OrderDate:      now,
		ExpectedDate:   in.ExpectedDate,
		WarehouseID:    in.WarehouseID,
		Note:           in.Note,
		PurchaserID:    purchaserID,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// GetByID devuelve una compra con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(purchase), nil
}

// List lista compras con búsqueda por número y filtro por estado.
func (uc *UseCase) List(page dto.PageRequest, status string) (*dto.ListResponse[dto.PurchaseResponse], error) {
	page.Normalize()
	if status != "" && !domstatus.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.purchaseRepo.List(search, status, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.purchaseRepo.Count(search, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update edita cabecera y líneas (solo en DRAFT) o cambia el estado según la
// máquina de transiciones. Las recepciones van por Receive, no por aquí.
func (uc *UseCase) Update(in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	purchase, err := uc.purchaseRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != nil {
		to := *in.Status
		if !domstatus.ValidStatus(to) {
			return nil, domain.ErrInvalidInput
		}
		if to == entity.PurchaseStatusPartial || to == entity.PurchaseStatusReceived {
			// recibir ingresa stock: tiene endpoint propio
			return nil, domain.ErrInvalidTransition
		}
		if !domstatus.CanTransition(purchase.Status, to) {
			return nil, domain.ErrInvalidTransition
		}
		if err := uc.purchaseRepo.UpdateStatus(purchase.ID, to); err != nil {
			return nil, err
		}
		purchase.Status = to
		return toPurchaseResponse(purchase), nil
	}

	if purchase.Status != entity.PurchaseStatusDraft {
		return nil, domain.ErrNotDraft
	}

	if in.Items != nil {
		items, total, err := uc.buildItems(purchase.ID, in.Items)
		if err != nil {
			return nil, err
		}
		purchase.Items = items
		purchase.TotalAmount = total
	}
	if in.WarehouseID != nil {
		warehouse, err := uc.warehouseRepo.GetByID(*in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrNotFound
		}
		purchase.WarehouseID = *in.WarehouseID
	}
	if in.ExpectedDate != nil {
		purchase.ExpectedDate = in.ExpectedDate
	}
	if in.Note != nil {
		purchase.Note = *in.Note
	}

	purchase.TaxAmount = finance.Tax(purchase.TotalAmount, purchase.TaxRate)
	purchase.FinalAmount = finance.FinalAmount(purchase.TotalAmount, decimal.Zero, purchase.TaxAmount)
	purchase.UpdatedAt = time.Now()

	if err := uc.purchaseRepo.UpdateHeader(purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// receivePlan calcula cuánto recibir por línea y si la compra queda completa.
// Sin líneas en la petición se recibe todo lo pendiente; con líneas, ninguna
// puede exceder su pendiente.
func receivePlan(purchase *entity.Purchase, in dto.ReceivePurchaseRequest) (map[string]int64, bool, error) {
	toReceive := make(map[string]int64, len(purchase.Items))
	if len(in.Items) == 0 {
		for _, it := range purchase.Items {
			if pending := it.Quantity - it.ReceivedQty; pending > 0 {
				toReceive[it.ID] = pending
			}
		}
	} else {
		byID := make(map[string]*entity.PurchaseItem, len(purchase.Items))
		for i := range purchase.Items {
			byID[purchase.Items[i].ID] = &purchase.Items[i]
		}
		for _, r := range in.Items {
			item, ok := byID[r.ItemID]
			if !ok || r.Quantity <= 0 {
				return nil, false, domain.ErrInvalidInput
			}
			// no se recibe más de lo pendiente
			if r.Quantity > item.Quantity-item.ReceivedQty {
				return nil, false, domain.ErrInvalidInput
			}
			toReceive[r.ItemID] = r.Quantity
		}
	}
	if len(toReceive) == 0 {
		return nil, false, domain.ErrInvalidInput
	}

	complete := true
	for _, it := range purchase.Items {
		if it.ReceivedQty+toReceive[it.ID] < it.Quantity {
			complete = false
			break
		}
	}
	return toReceive, complete, nil
}

// Receive registra una recepción de mercadería: ingresa stock (PURCHASE_IN)
// en la bodega destino por cada línea recibida y deja la compra en PARTIAL o
// RECEIVED según quede pendiente o no. Sin líneas en el body se recibe todo
// lo pendiente. Todo o nada dentro de una transacción; estado y pendientes
// se revalidan dentro de ella con la cabecera bloqueada, así dos recepciones
// concurrentes no ingresan el mismo pendiente dos veces.
func (uc *UseCase) Receive(ctx context.Context, operatorID, purchaseID string, in dto.ReceivePurchaseRequest) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		fresh, err := purchaseRepo.GetByIDForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrNotFound
		}
		switch fresh.Status {
		case entity.PurchaseStatusShipped, entity.PurchaseStatusPartial:
		default:
			return domain.ErrInvalidTransition
		}

		toReceive, complete, err := receivePlan(fresh, in)
		if err != nil {
			return err
		}

		for i := range fresh.Items {
			item := &fresh.Items[i]
			qty, ok := toReceive[item.ID]
			if !ok {
				continue
			}
			note := fmt.Sprintf("compra %s", fresh.PurchaseNumber)
			_, err := inventory.ApplyAdjustment(
				invRepo, movRepo,
				item.ProductID, fresh.WarehouseID,
				dominv.KindPurchaseIn, qty,
				operatorID, note,
			)
			if err != nil {
				return err
			}
			item.ReceivedQty += qty
		}
		fresh.Status = entity.PurchaseStatusPartial
		if complete {
			fresh.Status = entity.PurchaseStatusReceived
			fresh.ReceivedDate = &now
		}
		fresh.UpdatedAt = now
		if err := purchaseRepo.UpdateReceived(fresh); err != nil {
			return err
		}
		purchase = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil && purchase.PurchaserID != "" {
		uc.notifier.Notify(purchase.PurchaserID, "ORDER",
			"Recepción registrada",
			fmt.Sprintf("La compra %s quedó en %s", purchase.PurchaseNumber, purchase.Status),
			"/purchases/"+purchase.ID)
	}
	return toPurchaseResponse(purchase), nil
}

// Delete elimina una compra; solo en DRAFT.
func (uc *UseCase) Delete(id string) error {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	if purchase.Status != entity.PurchaseStatusDraft {
		return domain.ErrNotDraft
	}
	return uc.purchaseRepo.Delete(id)
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Amount:      it.Amount,
			ReceivedQty: it.ReceivedQty,
			Note:        it.Note,
		})
	}
	return &dto.PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		Status:         p.Status,
		TotalAmount:    p.TotalAmount,
		TaxRate:        p.TaxRate,
		TaxAmount:      p.TaxAmount,
		FinalAmount:    p.FinalAmount,
		OrderDate:      p.OrderDate,
		ExpectedDate:   p.ExpectedDate,
		ReceivedDate:   p.ReceivedDate,
		WarehouseID:    p.WarehouseID,
		Note:           p.Note,
		PurchaserID:    p.PurchaserID,
		Items:          items,
		CreatedAt:      p.CreatedAt,
	}
}
