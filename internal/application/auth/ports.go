package auth

import "github.com/jhoicas/supermercado-api/pkg/jwt"

// PasswordHasher lo implementa password.Hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenCodec lo implementa jwt.Codec.
type TokenCodec interface {
	Issue(subject string) (jwt.Token, error)
	Decode(token string) (*jwt.Claims, error)
}
