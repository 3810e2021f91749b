package users

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-ops/internal/application/auth"
	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// UsersUseCase administración de usuarios. Todas las operaciones son de
// alcance admin; a diferencia del auto-registro, aquí sí se asigna rol.
type UsersUseCase struct {
	guard    *auth.Guard
	userRepo repository.UserRepository
}

// NewUsersUseCase construye el caso de uso.
func NewUsersUseCase(guard *auth.Guard, userRepo repository.UserRepository) *UsersUseCase {
	return &UsersUseCase{guard: guard, userRepo: userRepo}
}

// AddInput datos del alta de usuario por un admin.
type AddInput struct {
	Name      string
	Password  string
	Latitude  float64
	Longitude float64
	Role      string
}

// Add crea un usuario con el rol indicado (customer, manager o admin).
func (uc *UsersUseCase) Add(ctx context.Context, sess *session.Session, in AddInput) (*entity.User, error) {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if in.Name == "" || len(in.Password) < 3 || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if in.Latitude < 0 || in.Latitude > 100 || in.Longitude < 0 || in.Longitude > 100 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         in.Name,
		PasswordHash: string(hash),
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Role:         in.Role,
	}
	if _, err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateUserExists predicado del validador interactivo.
func (uc *UsersUseCase) ValidateUserExists(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return nil
}

// Remove elimina un usuario. Un admin no puede eliminarse a sí mismo: dejaría
// la sesión apuntando a un usuario inexistente a mitad de flujo.
func (uc *UsersUseCase) Remove(ctx context.Context, sess *session.Session, id int64) error {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		return err
	}
	if id == sess.UserID {
		return domain.ErrConflict
	}
	return uc.userRepo.Delete(ctx, id)
}

// List listado completo de usuarios (solo admin).
func (uc *UsersUseCase) List(ctx context.Context, sess *session.Session) ([]*entity.User, error) {
	if err := uc.guard.Authorize(ctx, sess, entity.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.userRepo.List(ctx)
}
