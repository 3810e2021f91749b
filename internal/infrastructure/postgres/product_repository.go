package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops/internal/domain"
	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Get obtiene un producto por (tienda, nombre). Devuelve (nil, nil) si no existe.
func (r *ProductRepo) Get(ctx context.Context, storeID int64, name string) (*entity.Product, error) {
	query := `
		SELECT store_id, product_name, units, price
		FROM products WHERE store_id = $1 AND product_name = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, storeID, name).Scan(&p.StoreID, &p.Name, &p.Units, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByStore lista el catálogo de una tienda ordenado por nombre.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID int64) ([]*entity.Product, error) {
	query := `
		SELECT store_id, product_name, units, price
		FROM products WHERE store_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.StoreID, &p.Name, &p.Units, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Create inserta un producto nuevo; domain.ErrDuplicate si la clave (tienda, nombre) ya existe.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (store_id, product_name, units, price)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, p.StoreID, p.Name, p.Units, p.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Overwrite reemplaza unidades y precio del producto.
func (r *ProductRepo) Overwrite(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET units = $3, price = $4
		WHERE store_id = $1 AND product_name = $2`
	tag, err := r.q.Exec(ctx, query, p.StoreID, p.Name, p.Units, p.Price)
	if err != nil {
		return fmt.Errorf("overwrite product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementUnits descuenta qty en un único UPDATE condicional (units >= qty),
// de modo que pedidos concurrentes nunca dejan stock negativo. Cero filas
// afectadas significa stock insuficiente o producto desaparecido; se
// distingue con una lectura posterior dentro de la misma transacción.
func (r *ProductRepo) DecrementUnits(ctx context.Context, storeID int64, name string, qty int64) error {
	query := `
		UPDATE products SET units = units - $3
		WHERE store_id = $1 AND product_name = $2 AND units >= $3`
	tag, err := r.q.Exec(ctx, query, storeID, name, qty)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrement units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.Get(ctx, storeID, name)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// Delete elimina un producto del catálogo de una tienda.
func (r *ProductRepo) Delete(ctx context.Context, storeID int64, name string) error {
	query := `DELETE FROM products WHERE store_id = $1 AND product_name = $2`
	tag, err := r.q.Exec(ctx, query, storeID, name)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
