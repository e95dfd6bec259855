package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	byEmail   map[string]*entity.User
	lastLogin string
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(id string) error {
	f.lastLogin = id
	return nil
}

type staticIssuer struct{}

func (staticIssuer) Generate(userID, role string) (string, error) {
	return "tok-" + userID + "-" + role, nil
}

func seedUser(repo *fakeUserRepo, email, password, role string, active bool) *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &entity.User{
		ID: "u-" + email, Email: email, PasswordHash: string(hash),
		Name: "Test", Role: role, IsActive: active,
	}
	repo.byEmail[email] = u
	return u
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	seedUser(repo, "ana@acme.com", "secret123", entity.RoleSales, true)
	seedUser(repo, "off@acme.com", "secret123", entity.RoleSales, false)
	uc := NewUseCase(repo, staticIssuer{})

	t.Run("ok", func(t *testing.T) {
		out, err := uc.Login(dto.LoginRequest{Email: "Ana@Acme.com ", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "tok-u-ana@acme.com-SALES", out.Token)
		assert.Equal(t, "ana@acme.com", out.User.Email)
		assert.Equal(t, "u-ana@acme.com", repo.lastLogin, "registra último acceso")
	})

	t.Run("password incorrecto", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("email inexistente responde igual", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "ghost@acme.com", Password: "secret123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("usuario inactivo", func(t *testing.T) {
		_, err := uc.Login(dto.LoginRequest{Email: "off@acme.com", Password: "secret123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	seedUser(repo, "dup@acme.com", "secret123", entity.RoleEmployee, true)
	uc := NewUseCase(repo, staticIssuer{})

	t.Run("solo ADMIN", func(t *testing.T) {
		_, err := uc.Register(entity.RoleSales, dto.RegisterRequest{Email: "x@acme.com", Password: "secret123", Name: "X"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("ok con rol por defecto", func(t *testing.T) {
		out, err := uc.Register(entity.RoleAdmin, dto.RegisterRequest{
			Email: "New@Acme.com", Password: "secret123", Name: "Nuevo",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@acme.com", out.Email)
		assert.Equal(t, entity.RoleEmployee, out.Role)
		assert.True(t, out.IsActive)

		stored := repo.byEmail["new@acme.com"]
		require.NotNil(t, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	})

	t.Run("email duplicado", func(t *testing.T) {
		_, err := uc.Register(entity.RoleAdmin, dto.RegisterRequest{Email: "dup@acme.com", Password: "secret123", Name: "Dup"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("validaciones", func(t *testing.T) {
		_, err := uc.Register(entity.RoleAdmin, dto.RegisterRequest{Email: "x@acme.com", Password: "short", Name: "X"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "password corto")
		_, err = uc.Register(entity.RoleAdmin, dto.RegisterRequest{Email: "no-arroba", Password: "secret123", Name: "X"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "email inválido")
		_, err = uc.Register(entity.RoleAdmin, dto.RegisterRequest{Email: "x@acme.com", Password: "secret123", Name: "X", Role: "SUPREMO"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")
	})
}
