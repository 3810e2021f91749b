package repository

import (
	"context"
	"time"
)

// OrderReportRow fila del reporte de pedidos (join con usuarios y tiendas).
type OrderReportRow struct {
	Number       int64
	CustomerName string
	StoreID      int64
	StoreName    string
	ProductName  string
	Units        int64
	OrderTime    time.Time
}

// UpdateReportRow fila del reporte de ediciones de producto.
type UpdateReportRow struct {
	Number      int64
	ManagerName string
	StoreID     int64
	ProductName string
	UpdatedOn   time.Time
}

// ProductPopularity producto con su número de pedidos en el período completo.
type ProductPopularity struct {
	ProductName string
	Orders      int64
}

// CustomerPopularity cliente con su número de pedidos.
type CustomerPopularity struct {
	CustomerID   int64
	CustomerName string
	Orders       int64
}

// ReportRepository consultas de solo lectura para los reportes de recencia y
// popularidad. Los métodos Recent* ordenan por timestamp descendente con el
// identificador como desempate estable; los Popular* por número de pedidos
// descendente con el nombre ascendente como desempate.
type ReportRepository interface {
	RecentOrdersByCustomer(ctx context.Context, customerID int64, limit int) ([]OrderReportRow, error)
	RecentOrdersByManager(ctx context.Context, managerID int64, limit int) ([]OrderReportRow, error)
	RecentOrders(ctx context.Context, limit int) ([]OrderReportRow, error)

	// OrdersByManager / AllOrders: listados completos (sin límite).
	OrdersByManager(ctx context.Context, managerID int64) ([]OrderReportRow, error)
	AllOrders(ctx context.Context) ([]OrderReportRow, error)

	RecentUpdatesByStore(ctx context.Context, storeID int64, limit int) ([]UpdateReportRow, error)
	RecentUpdates(ctx context.Context, limit int) ([]UpdateReportRow, error)

	PopularProductsByStore(ctx context.Context, storeID int64, limit int) ([]ProductPopularity, error)
	PopularProducts(ctx context.Context, limit int) ([]ProductPopularity, error)
	PopularCustomersByManager(ctx context.Context, managerID int64, limit int) ([]CustomerPopularity, error)
	PopularCustomers(ctx context.Context, limit int) ([]CustomerPopularity, error)
}
