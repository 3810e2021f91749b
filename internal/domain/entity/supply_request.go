package entity

import "time"

// SupplyRequest pedido de reposición de un manager hacia una bodega.
// Append-only; el stock de la tienda no cambia al registrar la solicitud,
// solo cuando la mercancía llega y el manager actualiza el producto.
type SupplyRequest struct {
	Number         int64
	ManagerID      int64
	WarehouseID    int64
	StoreID        int64
	ProductName    string
	UnitsRequested int64
	RequestedOn    time.Time
}
