package entity

import "time"

// ProductUpdate registro de auditoría de una edición de producto.
// Append-only: una fila por cada commit del flujo de actualización.
type ProductUpdate struct {
	Number      int64
	ManagerID   int64
	StoreID     int64
	ProductName string
	UpdatedOn   time.Time
}
