package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermercado-api/internal/application/auth"
	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/pkg/jwt"
	"github.com/jhoicas/supermercado-api/pkg/password"
)

// memUsers credential store en memoria; solo lo necesario para auth.
type memUsers struct {
	mu    sync.Mutex
	users map[int64]*entity.User
	err   error
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{users: map[int64]*entity.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) FindActiveByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	email = entity.NormalizeEmail(email)
	for _, u := range m.users {
		if u.IsActive() && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindActiveByEmailOrCPF(ctx context.Context, email, _ string) (*entity.User, error) {
	return m.FindActiveByEmail(ctx, email)
}

func (m *memUsers) FindActiveByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok && u.IsActive() {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) ListActive(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Create(context.Context, *entity.User) error                   { return nil }
func (m *memUsers) Update(context.Context, *entity.User) error                   { return nil }

func (m *memUsers) SoftDelete(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.users[user.ID].DeletedAt = &now
	return nil
}

// countingHasher cuenta las verificaciones para comprobar que el email desconocido también verifica.
type countingHasher struct {
	*password.Hasher
	verifies int
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.verifies++
	return h.Hasher.Verify(plaintext, digest)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

var (
	ctx     = context.Background()
	startAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl     = 30 * time.Minute
)

type fixture struct {
	users    *memUsers
	hasher   *countingHasher
	clock    *clock
	codec    *jwt.Codec
	authn    *auth.Authenticator
	resolver *auth.SessionResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher := &countingHasher{Hasher: password.NewHasher(4)}
	digest, err := hasher.Hash("s3nha")
	require.NoError(t, err)
	users := newMemUsers(&entity.User{ID: 1, Name: "Ana", CPF: "11111111111", Email: "a@x.com", PasswordHash: digest})

	clk := &clock{t: startAt}
	codec, err := jwt.NewCodec(jwt.Config{Secret: "test-secret", Algorithm: "HS256", TTL: ttl})
	require.NoError(t, err)
	codec = codec.WithClock(clk.now)

	authn, err := auth.NewAuthenticator(users, hasher, codec, zerolog.Nop())
	require.NoError(t, err)
	return &fixture{
		users:    users,
		hasher:   hasher,
		clock:    clk,
		codec:    codec,
		authn:    authn,
		resolver: auth.NewSessionResolver(users, codec, zerolog.Nop()),
	}
}

func TestLogin_SubjectEsElEmail(t *testing.T) {
	f := newFixture(t)

	tok, err := f.authn.Login(ctx, "a@x.com", "s3nha")
	require.NoError(t, err)
	assert.Equal(t, dto.TokenTypeBearer, tok.TokenType)

	claims, err := f.codec.Decode(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
}

func TestLogin_EmailSinNormalizar(t *testing.T) {
	f := newFixture(t)
	_, err := f.authn.Login(ctx, "  A@X.com ", "s3nha")
	assert.NoError(t, err)
}

func TestLogin_MismoErrorParaPasswordYEmail(t *testing.T) {
	f := newFixture(t)

	_, errWrong := f.authn.Login(ctx, "a@x.com", "wrong")
	_, errUnknown := f.authn.Login(ctx, "nadie@x.com", "s3nha")

	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	assert.Equal(t, 2, f.hasher.verifies, "el email desconocido también verifica contra el hash dummy")
}

func TestLogin_UsuarioDadoDeBaja(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.users.SoftDelete(ctx, &entity.User{ID: 1}))

	_, err := f.authn.Login(ctx, "a@x.com", "s3nha")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_ErrorDeBaseNoEsCredencialInvalida(t *testing.T) {
	f := newFixture(t)
	f.users.err = errors.New("conexión perdida")

	_, err := f.authn.Login(ctx, "a@x.com", "s3nha")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResolve_LimiteDeExpiracion(t *testing.T) {
	f := newFixture(t)
	tok, err := f.authn.Login(ctx, "a@x.com", "s3nha")
	require.NoError(t, err)

	f.clock.t = startAt.Add(ttl - time.Second)
	user, err := f.resolver.Resolve(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	f.clock.t = startAt.Add(ttl)
	_, err = f.resolver.Resolve(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	f.clock.t = startAt.Add(ttl + time.Hour)
	_, err = f.resolver.Resolve(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolve_BasuraEsNoAutenticado(t *testing.T) {
	f := newFixture(t)
	for _, raw := range []string{"", "garbage", "a.b.c", "Bearer xyz", "eyJhbGciOiJIUzI1NiJ9.e30.x"} {
		_, err := f.resolver.Resolve(ctx, raw)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, raw)
	}
}

func TestResolve_SinSubject(t *testing.T) {
	f := newFixture(t)
	tok, err := f.codec.Issue("")
	require.NoError(t, err)

	_, err = f.resolver.Resolve(ctx, tok.Value)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolve_UsuarioDadoDeBajaTrasEmision(t *testing.T) {
	f := newFixture(t)
	tok, err := f.authn.Login(ctx, "a@x.com", "s3nha")
	require.NoError(t, err)

	require.NoError(t, f.users.SoftDelete(ctx, &entity.User{ID: 1}))

	_, err = f.resolver.Resolve(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRefresh_DosTokensDistintosYValidos(t *testing.T) {
	f := newFixture(t)
	tok, err := f.authn.Login(ctx, "a@x.com", "s3nha")
	require.NoError(t, err)
	principal, err := f.resolver.Resolve(ctx, tok.AccessToken)
	require.NoError(t, err)

	first, err := f.authn.Refresh(ctx, principal)
	require.NoError(t, err)
	second, err := f.authn.Refresh(ctx, principal)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	f.clock.t = startAt.Add(ttl - time.Second)
	for _, tk := range []string{first.AccessToken, second.AccessToken} {
		u, err := f.resolver.Resolve(ctx, tk)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", u.Email)
	}
}

func TestRefresh_SinPrincipal(t *testing.T) {
	f := newFixture(t)
	_, err := f.authn.Refresh(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthorize_DuenoDistintoEsForbidden(t *testing.T) {
	f := newFixture(t)
	actor := &entity.User{ID: 3}

	assert.ErrorIs(t, f.resolver.Authorize(actor, 7), domain.ErrForbidden)
	assert.NoError(t, f.resolver.Authorize(actor, 3))
	assert.ErrorIs(t, f.resolver.Authorize(nil, 3), domain.ErrForbidden)
}
