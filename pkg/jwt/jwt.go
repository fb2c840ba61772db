package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Errores de decodificación. Ambos terminan en el mismo 401 hacia afuera;
// la distinción solo sirve para logs y métricas.
var (
	ErrMalformed = errors.New("jwt: token malformado o firma inválida")
	ErrExpired   = errors.New("jwt: token expirado")
)

// Config parámetros del codec; se construye desde config.JWTConfig al arrancar.
type Config struct {
	Secret    string
	Algorithm string // HS256 | HS384 | HS512
	TTL       time.Duration
	Issuer    string
}

// Claims contenido del token: el subject es el email del usuario.
type Claims struct {
	jwt.RegisteredClaims
}

// Token resultado de una emisión.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Codec firma y verifica tokens con un secreto y algoritmo fijos.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewCodec valida la configuración y construye el codec con reloj UTC.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("jwt: ttl debe ser positivo")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: algoritmo no soportado: %s", alg)
	}
	return &Codec{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock reemplaza la fuente de tiempo compartida por Issue y Decode.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = func() time.Time { return now().UTC() }
	return &cp
}

// TTL devuelve la vigencia configurada.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue firma un token para subject con expiración now + ttl.
// Cada token lleva un jti aleatorio, así dos emisiones en el mismo segundo no coinciden.
func (c *Codec) Issue(subject string) (Token, error) {
	now := c.now()
	exp := now.Add(c.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return Token{}, fmt.Errorf("firmar token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Decode verifica firma, algoritmo y expiración. Devuelve ErrExpired cuando now >= exp
// y ErrMalformed para cualquier otro fallo.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}
