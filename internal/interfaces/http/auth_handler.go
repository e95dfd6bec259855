package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/auth"
	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// AuthHandler maneja login y registro.
type AuthHandler struct {
	uc       *auth.UseCase
	activity *usecase.ActivityUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, activity *usecase.ActivityUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, activity: activity}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(out.User.ID, "LOGIN", "USER", out.User.ID, "", c.IP())
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar usuario (solo ADMIN)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "email, password y name son requeridos")
	}
	out, err := h.uc.Register(GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CREATE", "USER", out.ID, "registro de usuario "+out.Email, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}
