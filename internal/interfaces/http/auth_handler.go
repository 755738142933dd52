package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/auth"
	"github.com/tu-usuario/freelanceflow/internal/application/dto"
)

// AuthHandler maneja registro, login y gestión de la cuenta propia.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	user, err := h.uc.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, user)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, out)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user)
}

// ChangePassword POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.ChangePassword(GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, nil, "contraseña actualizada")
}
