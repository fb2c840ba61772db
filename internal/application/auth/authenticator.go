package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

// Authenticator verifica credenciales y emite tokens.
type Authenticator struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	codec     TokenCodec
	dummyHash string
	logger    zerolog.Logger
}

// NewAuthenticator construye el autenticador. Calcula una vez el hash que se verifica
// cuando el email no existe, así ambos caminos de login cuestan lo mismo.
func NewAuthenticator(users repository.UserRepository, hasher PasswordHasher, codec TokenCodec, logger zerolog.Logger) (*Authenticator, error) {
	dummy, err := hasher.Hash("supermercado-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("hash dummy: %w", err)
	}
	return &Authenticator{users: users, hasher: hasher, codec: codec, dummyHash: dummy, logger: logger}, nil
}

// Login devuelve un token para el usuario activo con ese email si la contraseña coincide.
// Email desconocido y contraseña incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, identifier, plaintext string) (*dto.TokenResponse, error) {
	email := entity.NormalizeEmail(identifier)
	user, err := a.users.FindActiveByEmail(ctx, email)
	if err != nil {
		loginAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}

	digest := a.dummyHash
	if user != nil {
		digest = user.PasswordHash
	}
	ok := a.hasher.Verify(plaintext, digest)
	if user == nil || !ok {
		loginAttempts.WithLabelValues("invalid").Inc()
		a.logger.Debug().Bool("known_email", user != nil).Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := a.issue(user, "login")
	if err != nil {
		loginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}
	loginAttempts.WithLabelValues("ok").Inc()
	return resp, nil
}

// Refresh emite un token nuevo para un usuario ya resuelto, sin volver a pedir contraseña.
func (a *Authenticator) Refresh(ctx context.Context, principal *entity.User) (*dto.TokenResponse, error) {
	if !principal.IsActive() {
		return nil, domain.ErrUnauthenticated
	}
	return a.issue(principal, "refresh")
}

func (a *Authenticator) issue(user *entity.User, source string) (*dto.TokenResponse, error) {
	tok, err := a.codec.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	tokensIssued.WithLabelValues(source).Inc()
	a.logger.Debug().Int64("user_id", user.ID).Str("source", source).Time("expires_at", tok.ExpiresAt).Msg("token emitido")
	return &dto.TokenResponse{AccessToken: tok.Value, TokenType: dto.TokenTypeBearer}, nil
}
