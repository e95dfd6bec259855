package sales

import (
	"context"
	"errors"
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
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	domstatus "github.com/tu-usuario/erp-pro/internal/domain/sales"
	"github.com/tu-usuario/erp-pro/pkg/textutil"
)

// UseCase órdenes de venta: creación con numeración atómica, edición solo en
// DRAFT, máquina de estados, confirmación con descuento de stock y PDF.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	counterRepo  repository.DocumentCounterRepository
	pdf          PDFGenerator
	notifier     Notifier
}

// NewUseCase construye el caso de uso. pdf y notifier pueden ser nil en
// pruebas; las operaciones que los usan lo toleran.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	counterRepo repository.DocumentCounterRepository,
	pdf PDFGenerator,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		counterRepo:  counterRepo,
		pdf:          pdf,
		notifier:     notifier,
	}
}

// buildItems valida las líneas entrantes y calcula sus importes.
func (uc *UseCase) buildItems(orderID string, in []dto.OrderItemRequest) ([]entity.OrderItem, decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(in))
	for _, line := range in {
		if line.ProductID == "" || line.Quantity <= 0 || line.UnitPrice.IsNegative() || line.Discount.IsNegative() {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		// Piso de precio: no se vende por debajo del mínimo del producto.
		if line.UnitPrice.LessThan(product.MinPrice) {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		amount := finance.LineAmount(line.Quantity, line.UnitPrice, line.Discount)
		if amount.IsNegative() {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			TaxRate:   line.TaxRate,
			Amount:    amount,
			Note:      line.Note,
		})
		total = total.Add(amount)
	}
	return items, total, nil
}

// Create crea una orden en DRAFT con número SO{YYYYMMDD}{seq} atómico.
func (uc *UseCase) Create(salesPersonID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	orderID := uuid.New().String()
	items, total, err := uc.buildItems(orderID, in.Items)
	if err != nil {
		return nil, err
	}

	taxRate := finance.DefaultTaxRate
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		taxRate = *in.TaxRate
	}
	tax := finance.Tax(total, taxRate)
	final := finance.FinalAmount(total, in.Discount, tax)
	if final.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	seq, err := uc.counterRepo.Next(docnum.PrefixOrder, now)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:              orderID,
		OrderNumber:     docnum.Format(docnum.PrefixOrder, now, seq),
		CustomerID:      in.CustomerID,
		Status:          entity.OrderStatusDraft,
		TotalAmount:     total,
		Discount:        in.Discount,
		TaxRate:         taxRate,
		TaxAmount:       tax,
		FinalAmount:     final,
		OrderDate:       now,
		DeliveryDate:    in.DeliveryDate,
		DeliveryAddress: in.DeliveryAddress,
		Note:            in.Note,
		SalesPersonID:   salesPersonID,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID devuelve una orden con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con búsqueda por número y filtro por estado.
func (uc *UseCase) List(page dto.PageRequest, status string) (*dto.ListResponse[dto.OrderResponse], error) {
	page.Normalize()
	if status != "" && !domstatus.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.orderRepo.List(search, status, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.orderRepo.Count(search, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update edita cabecera y líneas (solo en DRAFT) o cambia el estado según la
// máquina de transiciones. Los cambios de estado con efectos de inventario
// van por Confirm, no por aquí.
func (uc *UseCase) Update(in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	// Cambio de estado puro: válido desde cualquier estado según la tabla.
	if in.Status != nil {
		to := *in.Status
		if !domstatus.ValidStatus(to) {
			return nil, domain.ErrInvalidInput
		}
		if to == entity.OrderStatusConfirmed {
			// confirmar descuenta stock: tiene endpoint propio
			return nil, domain.ErrInvalidTransition
		}
		if !domstatus.CanTransition(order.Status, to) {
			return nil, domain.ErrInvalidTransition
		}
		if err := uc.orderRepo.UpdateStatus(order.ID, to); err != nil {
			return nil, err
		}
		order.Status = to
		return toOrderResponse(order), nil
	}

	// Todo lo demás solo se toca en borrador.
	if order.Status != entity.OrderStatusDraft {
		return nil, domain.ErrNotDraft
	}

	if in.Items != nil {
		items, total, err := uc.buildItems(order.ID, in.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.TotalAmount = total
	}
	if in.Discount != nil {
		if in.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		order.Discount = *in.Discount
	}
	if in.DeliveryDate != nil {
		order.DeliveryDate = in.DeliveryDate
	}
	if in.DeliveryAddress != nil {
		order.DeliveryAddress = *in.DeliveryAddress
	}
	if in.Note != nil {
		order.Note = *in.Note
	}

	order.TaxAmount = finance.Tax(order.TotalAmount, order.TaxRate)
	order.FinalAmount = finance.FinalAmount(order.TotalAmount, order.Discount, order.TaxAmount)
	if order.FinalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	order.UpdatedAt = time.Now()

	if err := uc.orderRepo.UpdateHeader(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Confirm pasa una orden DRAFT a CONFIRMED descontando el stock de cada
// línea (SALE_OUT) desde la bodega indicada. Todo o nada: si una línea no
// tiene stock suficiente, nada queda descontado ni cambia el estado.
func (uc *UseCase) Confirm(ctx context.Context, operatorID, orderID string, in dto.ConfirmOrderRequest) (*dto.OrderResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft {
		return nil, domain.ErrNotDraft
	}

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// La transición condicional va primero: la lectura de arriba fue
		// fuera de la tx, y si otra confirmación entró en medio hay que
		// abortar aquí, antes de tocar stock.
		if err := orderRepo.UpdateStatusFrom(order.ID, entity.OrderStatusDraft, entity.OrderStatusConfirmed); err != nil {
			return err
		}
		for _, item := range order.Items {
			note := fmt.Sprintf("orden %s", order.OrderNumber)
			_, err := inventory.ApplyAdjustment(
				invRepo, movRepo,
				item.ProductID, in.WarehouseID,
				dominv.KindSaleOut, item.Quantity,
				operatorID, note,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrNotDraft
		}
		return nil, err
	}

	order.Status = entity.OrderStatusConfirmed
	if uc.notifier != nil && order.SalesPersonID != "" {
		uc.notifier.Notify(order.SalesPersonID, "ORDER",
			"Orden confirmada",
			fmt.Sprintf("La orden %s fue confirmada", order.OrderNumber),
			"/orders/"+order.ID)
	}
	return toOrderResponse(order), nil
}

// Delete elimina una orden; solo en DRAFT.
func (uc *UseCase) Delete(id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft {
		return domain.ErrNotDraft
	}
	return uc.orderRepo.Delete(id)
}

// PDF genera el PDF imprimible de una orden.
func (uc *UseCase) PDF(id string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("generador de PDF no configurado")
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(order.Items))
	for _, item := range order.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		products[item.ProductID] = p
	}
	return uc.pdf.OrderPDF(order, customer, products)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			TaxRate:   it.TaxRate,
			Amount:    it.Amount,
			Note:      it.Note,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		Discount:        o.Discount,
		TaxRate:         o.TaxRate,
		TaxAmount:       o.TaxAmount,
		FinalAmount:     o.FinalAmount,
		OrderDate:       o.OrderDate,
		DeliveryDate:    o.DeliveryDate,
		DeliveryAddress: o.DeliveryAddress,
		Note:            o.Note,
		SalesPersonID:   o.SalesPersonID,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}
