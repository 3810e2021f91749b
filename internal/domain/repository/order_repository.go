package repository

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	// Create inserta el pedido y devuelve el número asignado por la secuencia.
	Create(ctx context.Context, o *entity.Order) (int64, error)
}

// ProductUpdateRepository puerto para el registro de auditoría de ediciones.
type ProductUpdateRepository interface {
	Create(ctx context.Context, u *entity.ProductUpdate) (int64, error)
}

// SupplyRequestRepository puerto para solicitudes de reposición (append-only).
type SupplyRequestRepository interface {
	Create(ctx context.Context, r *entity.SupplyRequest) (int64, error)
}

// WarehouseRepository puerto de lectura de bodegas.
// GetByID devuelve (nil, nil) cuando la bodega no existe.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
}
