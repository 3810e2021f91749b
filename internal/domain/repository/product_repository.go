package repository

import (
	"context"

	"github.com/jhoicas/retail-ops/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Get devuelve (nil, nil) cuando el producto no existe en la tienda.
type ProductRepository interface {
	Get(ctx context.Context, storeID int64, name string) (*entity.Product, error)
	ListByStore(ctx context.Context, storeID int64) ([]*entity.Product, error)
	// Create inserta el producto; domain.ErrDuplicate si la clave ya existe.
	Create(ctx context.Context, p *entity.Product) error
	// Overwrite reemplaza unidades y precio; domain.ErrNotFound si no existe.
	Overwrite(ctx context.Context, p *entity.Product) error
	// DecrementUnits descuenta qty de forma condicional en un solo UPDATE
	// (units >= qty). Devuelve domain.ErrInsufficientStock si la condición
	// falla y domain.ErrNotFound si el producto desapareció.
	DecrementUnits(ctx context.Context, storeID int64, name string, qty int64) error
	// Delete elimina el producto; domain.ErrNotFound si no existe.
	Delete(ctx context.Context, storeID int64, name string) error
}
