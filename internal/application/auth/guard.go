package auth

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/application/session"
	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// Guard decide si una operación está permitida para la sesión. El rol NO se
// cachea: cada llamada lo resuelve contra la base de datos, de forma que una
// degradación o borrado hecho por un admin en otra terminal surte efecto en
// la siguiente operación del usuario afectado.
type Guard struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
}

// NewGuard construye el guard con los repos de usuarios y tiendas.
func NewGuard(userRepo repository.UserRepository, storeRepo repository.StoreRepository) *Guard {
	return &Guard{userRepo: userRepo, storeRepo: storeRepo}
}

// resolve lee el usuario de la sesión. Un usuario borrado se trata como no
// autorizado, no como error fatal.
func (g *Guard) resolve(ctx context.Context, sess *session.Session) (*entity.User, error) {
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := g.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// User devuelve el usuario actual de la sesión (posición incluida).
func (g *Guard) User(ctx context.Context, sess *session.Session) (*entity.User, error) {
	return g.resolve(ctx, sess)
}

// Role devuelve el rol vigente de la sesión.
func (g *Guard) Role(ctx context.Context, sess *session.Session) (string, error) {
	user, err := g.resolve(ctx, sess)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Authorize verifica que el rol vigente de la sesión esté entre los permitidos.
// Devuelve domain.ErrForbidden si el rol no alcanza y domain.ErrUnauthorized
// si la sesión referencia un usuario borrado.
func (g *Guard) Authorize(ctx context.Context, sess *session.Session, roles ...string) error {
	user, err := g.resolve(ctx, sess)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}

// AuthorizeStore verifica acceso de gestión sobre una tienda: admin pasa con
// cualquier tienda existente; manager solo con las que administra.
func (g *Guard) AuthorizeStore(ctx context.Context, sess *session.Session, storeID int64) error {
	user, err := g.resolve(ctx, sess)
	if err != nil {
		return err
	}
	switch user.Role {
	case entity.RoleAdmin:
		store, err := g.storeRepo.GetByID(ctx, storeID)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.ErrNotFound
		}
		return nil
	case entity.RoleManager:
		managed, err := g.storeRepo.IsManagedBy(ctx, storeID, user.ID)
		if err != nil {
			return err
		}
		if !managed {
			return domain.ErrForbidden
		}
		return nil
	}
	return domain.ErrForbidden
}
