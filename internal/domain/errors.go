package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNonZeroStock       = errors.New("el registro de inventario tiene stock distinto de cero")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrNotDraft           = errors.New("el documento no está en estado DRAFT")
	ErrHasReferences      = errors.New("el recurso tiene registros asociados")
	ErrSelfDelete         = errors.New("no puedes eliminar tu propio usuario")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
