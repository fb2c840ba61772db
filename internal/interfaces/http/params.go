package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
)

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, badRequest("id debe ser un entero positivo")
	}
	return int64(id), nil
}

// pageQuery lee ?skip=&limit=.
func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, badRequest("skip y limit deben ser enteros")
	}
	return page, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("cuerpo inválido")
	}
	return nil
}
