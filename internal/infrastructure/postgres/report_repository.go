package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de recencia y popularidad.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// baseOrderSelect join de pedidos con cliente y tienda; las variantes solo
// cambian el WHERE y el LIMIT.
const baseOrderSelect = `
	SELECT o.order_number, u.name, o.store_id, s.name, o.product_name, o.units_ordered, o.order_time
	FROM orders o
	JOIN users  u ON u.user_id  = o.customer_id
	JOIN stores s ON s.store_id = o.store_id`

// RecentOrdersByCustomer últimos pedidos del cliente, más reciente primero.
// El desempate por order_number DESC es estable: la secuencia sigue el orden de inserción.
func (r *ReportRepo) RecentOrdersByCustomer(ctx context.Context, customerID int64, limit int) ([]repository.OrderReportRow, error) {
	query := baseOrderSelect + `
	WHERE o.customer_id = $1
	ORDER BY o.order_time DESC, o.order_number DESC
	LIMIT $2`
	return r.queryOrders(ctx, "recent orders by customer", query, customerID, limit)
}

// RecentOrdersByManager últimos pedidos sobre las tiendas administradas por managerID.
func (r *ReportRepo) RecentOrdersByManager(ctx context.Context, managerID int64, limit int) ([]repository.OrderReportRow, error) {
	query := baseOrderSelect + `
	WHERE s.manager_id = $1
	ORDER BY o.order_time DESC, o.order_number DESC
	LIMIT $2`
	return r.queryOrders(ctx, "recent orders by manager", query, managerID, limit)
}

// RecentOrders últimos pedidos de toda la cadena (alcance admin).
func (r *ReportRepo) RecentOrders(ctx context.Context, limit int) ([]repository.OrderReportRow, error) {
	query := baseOrderSelect + `
	ORDER BY o.order_time DESC, o.order_number DESC
	LIMIT $1`
	return r.queryOrders(ctx, "recent orders", query, limit)
}

// OrdersByManager listado completo de pedidos de las tiendas del manager.
func (r *ReportRepo) OrdersByManager(ctx context.Context, managerID int64) ([]repository.OrderReportRow, error) {
	query := baseOrderSelect + `
	WHERE s.manager_id = $1
	ORDER BY o.order_time DESC, o.order_number DESC`
	return r.queryOrders(ctx, "orders by manager", query, managerID)
}

// AllOrders listado completo de pedidos (alcance admin).
func (r *ReportRepo) AllOrders(ctx context.Context) ([]repository.OrderReportRow, error) {
	query := baseOrderSelect + `
	ORDER BY o.order_time DESC, o.order_number DESC`
	return r.queryOrders(ctx, "all orders", query)
}

func (r *ReportRepo) queryOrders(ctx context.Context, op, query string, args ...any) ([]repository.OrderReportRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.%s: %w", op, err)
	}
	defer rows.Close()
	var result []repository.OrderReportRow
	for rows.Next() {
		var row repository.OrderReportRow
		if err := rows.Scan(
			&row.Number, &row.CustomerName, &row.StoreID, &row.StoreName,
			&row.ProductName, &row.Units, &row.OrderTime,
		); err != nil {
			return nil, fmt.Errorf("reports.%s scan: %w", op, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// RecentUpdatesByStore últimas ediciones de producto de una tienda.
func (r *ReportRepo) RecentUpdatesByStore(ctx context.Context, storeID int64, limit int) ([]repository.UpdateReportRow, error) {
	query := `
	SELECT p.update_number, u.name, p.store_id, p.product_name, p.updated_on
	FROM product_updates p
	JOIN users u ON u.user_id = p.manager_id
	WHERE p.store_id = $1
	ORDER BY p.updated_on DESC, p.update_number DESC
	LIMIT $2`
	return r.queryUpdates(ctx, "recent updates by store", query, storeID, limit)
}

// RecentUpdates últimas ediciones de producto de toda la cadena (alcance admin).
func (r *ReportRepo) RecentUpdates(ctx context.Context, limit int) ([]repository.UpdateReportRow, error) {
	query := `
	SELECT p.update_number, u.name, p.store_id, p.product_name, p.updated_on
	FROM product_updates p
	JOIN users u ON u.user_id = p.manager_id
	ORDER BY p.updated_on DESC, p.update_number DESC
	LIMIT $1`
	return r.queryUpdates(ctx, "recent updates", query, limit)
}

func (r *ReportRepo) queryUpdates(ctx context.Context, op, query string, args ...any) ([]repository.UpdateReportRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.%s: %w", op, err)
	}
	defer rows.Close()
	var result []repository.UpdateReportRow
	for rows.Next() {
		var row repository.UpdateReportRow
		if err := rows.Scan(&row.Number, &row.ManagerName, &row.StoreID, &row.ProductName, &row.UpdatedOn); err != nil {
			return nil, fmt.Errorf("reports.%s scan: %w", op, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// PopularProductsByStore productos más pedidos de una tienda.
// Desempate por nombre ascendente para que el resultado sea determinista.
func (r *ReportRepo) PopularProductsByStore(ctx context.Context, storeID int64, limit int) ([]repository.ProductPopularity, error) {
	query := `
	SELECT o.product_name, COUNT(*) AS total_orders
	FROM orders o
	WHERE o.store_id = $1
	GROUP BY o.product_name
	ORDER BY total_orders DESC, o.product_name ASC
	LIMIT $2`
	return r.queryProductPopularity(ctx, "popular products by store", query, storeID, limit)
}

// PopularProducts productos más pedidos de toda la cadena (alcance admin).
func (r *ReportRepo) PopularProducts(ctx context.Context, limit int) ([]repository.ProductPopularity, error) {
	query := `
	SELECT o.product_name, COUNT(*) AS total_orders
	FROM orders o
	GROUP BY o.product_name
	ORDER BY total_orders DESC, o.product_name ASC
	LIMIT $1`
	return r.queryProductPopularity(ctx, "popular products", query, limit)
}

func (r *ReportRepo) queryProductPopularity(ctx context.Context, op, query string, args ...any) ([]repository.ProductPopularity, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.%s: %w", op, err)
	}
	defer rows.Close()
	var result []repository.ProductPopularity
	for rows.Next() {
		var row repository.ProductPopularity
		if err := rows.Scan(&row.ProductName, &row.Orders); err != nil {
			return nil, fmt.Errorf("reports.%s scan: %w", op, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// PopularCustomersByManager clientes con más pedidos en las tiendas del manager.
func (r *ReportRepo) PopularCustomersByManager(ctx context.Context, managerID int64, limit int) ([]repository.CustomerPopularity, error) {
	query := `
	SELECT o.customer_id, u.name, COUNT(*) AS total_orders
	FROM orders o
	JOIN users  u ON u.user_id  = o.customer_id
	JOIN stores s ON s.store_id = o.store_id
	WHERE s.manager_id = $1
	GROUP BY o.customer_id, u.name
	ORDER BY total_orders DESC, u.name ASC
	LIMIT $2`
	return r.queryCustomerPopularity(ctx, "popular customers by manager", query, managerID, limit)
}

// PopularCustomers clientes con más pedidos en toda la cadena (alcance admin).
func (r *ReportRepo) PopularCustomers(ctx context.Context, limit int) ([]repository.CustomerPopularity, error) {
	query := `
	SELECT o.customer_id, u.name, COUNT(*) AS total_orders
	FROM orders o
	JOIN users u ON u.user_id = o.customer_id
	GROUP BY o.customer_id, u.name
	ORDER BY total_orders DESC, u.name ASC
	LIMIT $1`
	return r.queryCustomerPopularity(ctx, "popular customers", query, limit)
}

func (r *ReportRepo) queryCustomerPopularity(ctx context.Context, op, query string, args ...any) ([]repository.CustomerPopularity, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.%s: %w", op, err)
	}
	defer rows.Close()
	var result []repository.CustomerPopularity
	for rows.Next() {
		var row repository.CustomerPopularity
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.Orders); err != nil {
			return nil, fmt.Errorf("reports.%s scan: %w", op, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
