package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-ops/internal/domain/entity"
	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.ProductUpdateRepository = (*ProductUpdateRepo)(nil)
var _ repository.SupplyRequestRepository = (*SupplyRequestRepo)(nil)
var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido; order_number y order_time los asigna la base de
// datos, manteniendo la secuencia correcta entre instancias concurrentes.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) (int64, error) {
	query := `
		INSERT INTO orders (customer_id, store_id, product_name, units_ordered)
		VALUES ($1, $2, $3, $4)
		RETURNING order_number, order_time`
	err := r.q.QueryRow(ctx, query, o.CustomerID, o.StoreID, o.ProductName, o.Units).
		Scan(&o.Number, &o.OrderTime)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return o.Number, nil
}

// ProductUpdateRepo adaptador del registro de auditoría de ediciones.
type ProductUpdateRepo struct {
	q Querier
}

// NewProductUpdateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductUpdateRepository(q Querier) *ProductUpdateRepo {
	return &ProductUpdateRepo{q: q}
}

// Create inserta la fila de auditoría; update_number y updated_on los asigna la base.
func (r *ProductUpdateRepo) Create(ctx context.Context, u *entity.ProductUpdate) (int64, error) {
	query := `
		INSERT INTO product_updates (manager_id, store_id, product_name)
		VALUES ($1, $2, $3)
		RETURNING update_number, updated_on`
	err := r.q.QueryRow(ctx, query, u.ManagerID, u.StoreID, u.ProductName).
		Scan(&u.Number, &u.UpdatedOn)
	if err != nil {
		return 0, fmt.Errorf("insert product update: %w", err)
	}
	return u.Number, nil
}

// SupplyRequestRepo adaptador de solicitudes de reposición.
type SupplyRequestRepo struct {
	q Querier
}

// NewSupplyRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRequestRepository(q Querier) *SupplyRequestRepo {
	return &SupplyRequestRepo{q: q}
}

// Create inserta la solicitud; request_number y requested_on los asigna la base.
func (r *SupplyRequestRepo) Create(ctx context.Context, s *entity.SupplyRequest) (int64, error) {
	query := `
		INSERT INTO supply_requests (manager_id, warehouse_id, store_id, product_name, units_requested)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING request_number, requested_on`
	err := r.q.QueryRow(ctx, query, s.ManagerID, s.WarehouseID, s.StoreID, s.ProductName, s.UnitsRequested).
		Scan(&s.Number, &s.RequestedOn)
	if err != nil {
		return 0, fmt.Errorf("insert supply request: %w", err)
	}
	return s.Number, nil
}

// WarehouseRepo adaptador de lectura de bodegas.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// GetByID obtiene una bodega por ID. Devuelve (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `
		SELECT warehouse_id, area, latitude, longitude
		FROM warehouses WHERE warehouse_id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Area, &w.Latitude, &w.Longitude)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse by id: %w", err)
	}
	return &w, nil
}
