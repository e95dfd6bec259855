package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
)

// fakeUserRepo implementación en memoria del puerto UserRepository.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(user *entity.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *entity.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(id string) error {
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserRepo) List(search, role string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(search, role string) (int, error) {
	list, _ := f.List(search, role, 0, 0)
	return len(list), nil
}

func (f *fakeUserRepo) Delete(id string) error {
	delete(f.users, id)
	return nil
}

func seedUser(repo *fakeUserRepo, id, email, role string) {
	repo.users[id] = &entity.User{
		ID: id, Email: email, Name: "Usuario " + id, Role: role,
		PasswordHash: "$2a$10$placeholder", IsActive: true,
	}
}

// Nadie puede eliminar su propia cuenta, ni siquiera un ADMIN.
func TestUserDelete_AutoEliminacionRechazada(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u-1", "admin@x.com", entity.RoleAdmin)
	uc := NewUserUseCase(repo)

	err := uc.Delete("u-1", "u-1")
	assert.ErrorIs(t, err, domain.ErrSelfDelete)
	assert.Contains(t, repo.users, "u-1", "el usuario debe seguir existiendo")
}

func TestUserDelete_OtroUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u-1", "admin@x.com", entity.RoleAdmin)
	seedUser(repo, "u-2", "emp@x.com", entity.RoleEmployee)
	uc := NewUserUseCase(repo)

	require.NoError(t, uc.Delete("u-1", "u-2"))
	assert.NotContains(t, repo.users, "u-2")

	// Eliminar a alguien que no existe → not found.
	assert.ErrorIs(t, uc.Delete("u-1", "u-9"), domain.ErrUserNotFound)
}

// El cambio de password llega en claro y se persiste re-hasheado.
func TestUserUpdate_RehashDePassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u-1", "emp@x.com", entity.RoleEmployee)
	uc := NewUserUseCase(repo)

	pwd := "nueva-clave-123"
	out, err := uc.Update(dto.UpdateUserRequest{ID: "u-1", Password: &pwd})
	require.NoError(t, err)
	require.NotNil(t, out)

	stored := repo.users["u-1"].PasswordHash
	assert.NotEqual(t, pwd, stored, "la clave nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(pwd)))

	corta := "corta"
	_, err = uc.Update(dto.UpdateUserRequest{ID: "u-1", Password: &corta})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mínimo 8 caracteres")
}

func TestUserUpdate_RolInvalido(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u-1", "emp@x.com", entity.RoleEmployee)
	uc := NewUserUseCase(repo)

	malo := "SUPERADMIN"
	_, err := uc.Update(dto.UpdateUserRequest{ID: "u-1", Role: &malo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La respuesta de usuario nunca serializa el hash de la clave.
func TestUserGetByID_NoExponePassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u-1", "emp@x.com", entity.RoleEmployee)
	uc := NewUserUseCase(repo)

	out, err := uc.GetByID("u-1")
	require.NoError(t, err)
	assert.Equal(t, "emp@x.com", out.Email)

	_, err = uc.GetByID("u-9")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
