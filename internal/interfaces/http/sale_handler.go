package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear venta
// @Description  Inserta la venta y sus líneas en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Comprador y productos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SaleListResponse
// @Router       /sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Find(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
