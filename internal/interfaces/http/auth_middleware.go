package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supermercado-api/internal/domain/entity"
)

// LocalCurrentUser key de c.Locals con el *entity.User autenticado.
const LocalCurrentUser = "current_user"

// SessionResolver lo implementa auth.SessionResolver.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware resuelve el Bearer Token al usuario activo y lo deja en c.Locals.
// Header ausente o con otro esquema se trata igual que un token inválido.
func AuthMiddleware(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolver.Resolve(c.UserContext(), bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			return err
		}
		c.Locals(LocalCurrentUser, user)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetCurrentUser devuelve el usuario autenticado (después del middleware de auth).
func GetCurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalCurrentUser).(*entity.User)
	return u
}
