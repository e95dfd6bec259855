package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-pro/internal/application/auth"
	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	"github.com/tu-usuario/erp-pro/pkg/textutil"
)

// UserUseCase administración de usuarios (el alta vive en auth.Register).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetByID devuelve un usuario por id.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con búsqueda por nombre/email y filtro por rol.
func (uc *UserUseCase) List(page dto.PageRequest, role string) (*dto.ListResponse[dto.UserResponse], error) {
	page.Normalize()
	if role != "" && !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.userRepo.List(search, role, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.userRepo.Count(search, role)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update aplica cambios parciales. El email es inmutable; un cambio de
// password llega en claro y se re-hashea aquí.
func (uc *UserUseCase) Update(in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(callerID, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if callerID == id {
		return domain.ErrSelfDelete
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(id)
}
