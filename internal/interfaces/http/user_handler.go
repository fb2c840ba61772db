package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de usuarios. El alta es pública; el resto exige ser el dueño.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "name, cpf, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        skip   query  int  false  "Offset"  default(0)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.UserListResponse
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetCurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCurrentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted!"})
}
