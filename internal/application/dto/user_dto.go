package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest body para POST /api/auth/register (solo ADMIN).
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
}

// UpdateUserRequest body para PUT /api/users. Campos nil no se tocan.
type UpdateUserRequest struct {
	ID         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	Role       *string `json:"role,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
	Password   *string `json:"password,omitempty"`
}

// UserResponse usuario serializado; jamás incluye el hash de password.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone,omitempty"`
	Department  string     `json:"department,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
