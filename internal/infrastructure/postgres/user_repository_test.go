package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
)

var userCols = []string{"id", "name", "cpf", "email", "password_hash", "created_at", "updated_at", "deleted_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepo_FindActiveByEmail_NormalizaYFiltraBajas(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE deleted_at IS NULL AND email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(mock.NewRows(userCols).AddRow(int64(3), "Ana", "111", "a@x.com", "hash", now, now, nil))

	u, err := repo.FindActiveByEmail(context.Background(), " A@X.COM ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(3), u.ID)
	assert.True(t, u.IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindActiveByEmail_SinFila(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users`).WithArgs("nadie@x.com").WillReturnRows(mock.NewRows(userCols))

	u, err := repo.FindActiveByEmail(context.Background(), "nadie@x.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_Create_ConflictoPorConstraint(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"users_email_active_key", domain.ErrEmailAlreadyExists},
		{"users_cpf_active_key", domain.ErrCPFAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			mock := newMock(t)
			repo := NewUserRepository(mock)
			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs("Ana", "111", "a@x.com", "hash").
				WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: tc.constraint})

			err := repo.Create(context.Background(), &entity.User{Name: "Ana", CPF: "111", Email: "a@x.com", PasswordHash: "hash"})
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestUserRepo_SoftDelete_YaDadoDeBaja(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	mock.ExpectQuery(`UPDATE users SET deleted_at = now\(\)`).
		WithArgs(int64(3)).
		WillReturnRows(mock.NewRows([]string{"deleted_at"}))

	err := repo.SoftDelete(context.Background(), &entity.User{ID: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_SoftDelete_MarcaDeletedAt(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()
	mock.ExpectQuery(`UPDATE users SET deleted_at = now\(\)`).
		WithArgs(int64(3)).
		WillReturnRows(mock.NewRows([]string{"deleted_at"}).AddRow(&now))

	u := &entity.User{ID: 3}
	require.NoError(t, repo.SoftDelete(context.Background(), u))
	assert.False(t, u.IsActive())
}
