package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetByID obtiene una tienda por ID. Devuelve (nil, nil) si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*entity.Store, error) {
	query := `
		SELECT store_id, name, latitude, longitude, manager_id, date_established
		FROM stores WHERE store_id = $1`
	var s entity.Store
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.ManagerID, &s.DateEstablished,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store by id: %w", err)
	}
	return &s, nil
}

// List lista todas las tiendas ordenadas por ID. El filtro de cercanía se
// aplica en el dominio (geo.Distance), no en SQL, para que el predicado sea
// el mismo en flujos y tests.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	query := `
		SELECT store_id, name, latitude, longitude, manager_id, date_established
		FROM stores ORDER BY store_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.ManagerID, &s.DateEstablished); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// IsManagedBy reporta si la tienda existe y su manager es managerID.
func (r *StoreRepo) IsManagedBy(ctx context.Context, storeID, managerID int64) (bool, error) {
	var managed bool
	query := `SELECT EXISTS (SELECT 1 FROM stores WHERE store_id = $1 AND manager_id = $2)`
	if err := r.q.QueryRow(ctx, query, storeID, managerID).Scan(&managed); err != nil {
		return false, fmt.Errorf("store managed by: %w", err)
	}
	return managed, nil
}
