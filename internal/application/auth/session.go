package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
	"github.com/jhoicas/supermercado-api/pkg/jwt"
)

// SessionResolver convierte un bearer token en el usuario activo que lo porta.
// Se invoca una vez por request protegido.
type SessionResolver struct {
	users  repository.UserRepository
	codec  TokenCodec
	logger zerolog.Logger
}

// NewSessionResolver construye el resolvedor.
func NewSessionResolver(users repository.UserRepository, codec TokenCodec, logger zerolog.Logger) *SessionResolver {
	return &SessionResolver{users: users, codec: codec, logger: logger}
}

// Resolve decodifica el token y busca al usuario activo cuyo email es el subject.
// Token ausente, malformado, expirado, sin subject o de un usuario dado de baja devuelven
// domain.ErrUnauthenticated; solo un fallo de la base se propaga tal cual.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, r.reject(reasonMissing, nil)
	}
	claims, err := r.codec.Decode(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, r.reject(reasonExpired, err)
		}
		return nil, r.reject(reasonMalformed, err)
	}
	if claims.Subject == "" {
		return nil, r.reject(reasonNoSubject, nil)
	}
	user, err := r.users.FindActiveByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("resolver sesión: %w", err)
	}
	if user == nil {
		return nil, r.reject(reasonUnknownPrincipal, nil)
	}
	return user, nil
}

// Authorize exige que el actor sea el dueño del recurso direccionado.
func (r *SessionResolver) Authorize(actor *entity.User, ownerID int64) error {
	if actor == nil || actor.ID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

func (r *SessionResolver) reject(reason string, cause error) error {
	tokenRejections.WithLabelValues(reason).Inc()
	ev := r.logger.Debug().Str("reason", reason)
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Msg("token rechazado")
	return domain.ErrUnauthenticated
}
