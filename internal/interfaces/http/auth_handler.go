package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermercado-api/internal/application/auth"
	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
)

// AuthHandler maneja emisión y renovación de tokens.
type AuthHandler struct {
	authn *auth.Authenticator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(authn *auth.Authenticator) *AuthHandler {
	return &AuthHandler{authn: authn}
}

// Token godoc
// @Summary      Obtener token de acceso
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Email"
// @Param        password  formData  string  true  "Contraseña"
// @Success      200  {object}  dto.TokenResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.ErrInvalidCredentials
	}
	if in.Username == "" || in.Password == "" {
		return domain.ErrInvalidCredentials
	}
	out, err := h.authn.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar token de acceso
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.authn.Refresh(c.UserContext(), GetCurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
