package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	"github.com/tu-usuario/erp-pro/pkg/textutil"
)

// CustomerUseCase CRUD de clientes con código único y veto de borrado
// cuando existen órdenes que lo referencian.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, orderRepo: orderRepo}
}

// Create da de alta un cliente. El código es clave natural: duplicarlo es
// error de entrada, no conflicto.
func (uc *CustomerUseCase) Create(in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.CustomerTypeCompany && in.Type != entity.CustomerTypeIndividual {
		return nil, domain.ErrInvalidInput
	}
	if in.CreditLimit.IsNegative() || in.CreditDays < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.customerRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        in.Name,
		Type:        in.Type,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		TaxNumber:   in.TaxNumber,
		BankAccount: in.BankAccount,
		CreditLimit: in.CreditLimit,
		CreditDays:  in.CreditDays,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID devuelve un cliente por id.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con búsqueda por nombre/código.
func (uc *CustomerUseCase) List(page dto.PageRequest) (*dto.ListResponse[dto.CustomerResponse], error) {
	page.Normalize()
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.customerRepo.List(search, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.customerRepo.Count(search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update aplica cambios parciales. Código y tipo son inmutables.
func (uc *CustomerUseCase) Update(in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.TaxNumber != nil {
		customer.TaxNumber = *in.TaxNumber
	}
	if in.BankAccount != nil {
		customer.BankAccount = *in.BankAccount
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		customer.CreditLimit = *in.CreditLimit
	}
	if in.CreditDays != nil {
		if *in.CreditDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		customer.CreditDays = *in.CreditDays
	}
	if in.IsActive != nil {
		customer.IsActive = *in.IsActive
	}
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente solo si ninguna orden lo referencia.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.orderRepo.CountByCustomer(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrHasReferences
	}
	return uc.customerRepo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Type:        c.Type,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		TaxNumber:   c.TaxNumber,
		BankAccount: c.BankAccount,
		CreditLimit: c.CreditLimit,
		CreditDays:  c.CreditDays,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}
