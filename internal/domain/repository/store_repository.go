package repository

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

// StoreRepository define el puerto de lectura para Store.
// GetByID devuelve (nil, nil) cuando la tienda no existe.
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
	List(ctx context.Context) ([]*entity.Store, error)
	// IsManagedBy reporta si la tienda existe y su manager es managerID.
	IsManagedBy(ctx context.Context, storeID, managerID int64) (bool, error)
}
