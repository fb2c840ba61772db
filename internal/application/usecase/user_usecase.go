package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

// PasswordHasher lo implementa password.Hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// Authorizer lo implementa auth.SessionResolver: el actor debe ser dueño del recurso.
type Authorizer interface {
	Authorize(actor *entity.User, ownerID int64) error
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher PasswordHasher
	authz  Authorizer
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, hasher PasswordHasher, authz Authorizer) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher, authz: authz}
}

// Register crea un usuario. Devuelve ErrEmailAlreadyExists o ErrCPFAlreadyExists si ya hay
// un usuario activo con ese email o cpf.
func (uc *UserUseCase) Register(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CPF = strings.TrimSpace(in.CPF)
	in.Email = entity.NormalizeEmail(in.Email)
	if in.Name == "" || in.CPF == "" || in.Password == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("name, cpf, email y password son obligatorios: %w", domain.ErrInvalidInput)
	}
	if err := uc.ensureUnique(ctx, 0, in.Email, in.CPF); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         in.Name,
		CPF:          in.CPF,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios activos con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListActive(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(list))}
	for _, u := range list {
		out.Users = append(out.Users, *toUserResponse(u))
	}
	return out, nil
}

// Get devuelve el propio usuario; cualquier otro ID es ErrForbidden.
func (uc *UserUseCase) Get(ctx context.Context, actor *entity.User, id int64) (*dto.UserResponse, error) {
	if err := uc.authz.Authorize(actor, id); err != nil {
		return nil, err
	}
	return toUserResponse(actor), nil
}

// Update modifica los campos enviados del propio usuario. La contraseña se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := uc.authz.Authorize(actor, id); err != nil {
		return nil, err
	}
	user := *actor
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.CPF != nil && strings.TrimSpace(*in.CPF) != "" {
		user.CPF = strings.TrimSpace(*in.CPF)
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("email inválido: %w", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if user.Email != actor.Email || user.CPF != actor.CPF {
		if err := uc.ensureUnique(ctx, user.ID, user.Email, user.CPF); err != nil {
			return nil, err
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := uc.repo.Update(ctx, &user); err != nil {
		return nil, err
	}
	return toUserResponse(&user), nil
}

// Delete da de baja al propio usuario; sus tokens dejan de resolver.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := uc.authz.Authorize(actor, id); err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, actor)
}

// ensureUnique busca otro usuario activo con el mismo email o cpf. selfID se excluye.
func (uc *UserUseCase) ensureUnique(ctx context.Context, selfID int64, email, cpf string) error {
	existing, err := uc.repo.FindActiveByEmailOrCPF(ctx, email, cpf)
	if err != nil {
		return err
	}
	if existing == nil || existing.ID == selfID {
		return nil
	}
	if existing.Email == email {
		return domain.ErrEmailAlreadyExists
	}
	return domain.ErrCPFAlreadyExists
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		CPF:   u.CPF,
		Email: u.Email,
	}
}
