package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, cpf, email, password_hash, created_at, updated_at, deleted_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.CPF, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, args ...any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + activeOnly("") + ` AND ` + where + ` LIMIT 1`
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindActiveByEmail obtiene el usuario activo con ese email.
func (r *UserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `email = $1`, entity.NormalizeEmail(email))
}

// FindActiveByEmailOrCPF obtiene un usuario activo que coincida en email o cpf (chequeo de registro).
func (r *UserRepo) FindActiveByEmailOrCPF(ctx context.Context, email, cpf string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email or cpf", `(email = $1 OR cpf = $2)`, entity.NormalizeEmail(email), cpf)
}

// FindActiveByID obtiene un usuario activo por ID.
func (r *UserRepo) FindActiveByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `id = $1`, id)
}

// ListActive lista usuarios activos con paginación.
func (r *UserRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + activeOnly("") + ` ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Create persiste un nuevo usuario; ID y timestamps los genera la base.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	user.Email = entity.NormalizeEmail(user.Email)
	query := `
		INSERT INTO users (name, cpf, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, user.Name, user.CPF, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return userWriteError("insert user", err)
	}
	return nil
}

// Update actualiza datos de perfil y hash de un usuario activo.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	user.Email = entity.NormalizeEmail(user.Email)
	query := `
		UPDATE users SET name = $2, cpf = $3, email = $4, password_hash = $5, updated_at = now()
		WHERE id = $1 AND ` + activeOnly("") + `
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, user.ID, user.Name, user.CPF, user.Email, user.PasswordHash).
		Scan(&user.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("update user: %w", domain.ErrNotFound)
		}
		return userWriteError("update user", err)
	}
	return nil
}

// SoftDelete marca deleted_at; el usuario deja de resolver en cualquier búsqueda activa.
func (r *UserRepo) SoftDelete(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET deleted_at = now(), updated_at = now() WHERE id = $1 AND ` + activeOnly("") + ` RETURNING deleted_at`
	err := r.q.QueryRow(ctx, query, user.ID).Scan(&user.DeletedAt)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("delete user: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// userWriteError distingue qué índice único se violó (email o cpf) por el nombre del constraint.
func userWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "cpf"):
			return fmt.Errorf("%s: %w", op, domain.ErrCPFAlreadyExists)
		case strings.Contains(pgErr.ConstraintName, "email"):
			return fmt.Errorf("%s: %w", op, domain.ErrEmailAlreadyExists)
		}
	}
	return writeError(op, err)
}
