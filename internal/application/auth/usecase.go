package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	"github.com/tu-usuario/erp-pro/pkg/jwt"
)

// TokenIssuer firma tokens de acceso. Implementado por pkg/jwt.
type TokenIssuer interface {
	Generate(userID, role string) (string, error)
}

// JWTIssuer adapta pkg/jwt al puerto TokenIssuer.
type JWTIssuer struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

func (j *JWTIssuer) Generate(userID, role string) (string, error) {
	return jwt.Generate(j.Secret, userID, role, j.Issuer, j.ExpMinutes)
}

// UseCase autenticación: login y alta de usuarios (solo ADMIN).
type UseCase struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, issuer TokenIssuer) *UseCase {
	return &UseCase{userRepo: userRepo, issuer: issuer}
}

// Login valida credenciales contra el hash bcrypt y emite un JWT.
// Credenciales malas y usuario inexistente responden igual para no filtrar
// qué emails existen. Usuarios inactivos no pueden entrar.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.issuer.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	// Best effort: no bloquea el login si falla.
	_ = uc.userRepo.UpdateLastLogin(user.ID)
	now := time.Now()
	user.LastLoginAt = &now

	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Register da de alta un usuario. Solo un ADMIN autenticado puede llamarlo;
// el handler pasa el rol del caller extraído del token.
func (uc *UseCase) Register(callerRole string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Phone:        in.Phone,
		Department:   in.Department,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ToUserResponse serializa un usuario sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Phone:       u.Phone,
		Department:  u.Department,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
