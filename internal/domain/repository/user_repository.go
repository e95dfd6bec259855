package repository

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(id string) error
	List(search, role string, limit, offset int) ([]*entity.User, error)
	Count(search, role string) (int, error)
	Delete(id string) error
}
