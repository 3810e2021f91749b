package entity

import "time"

// Order representa un pedido de un cliente contra el stock de una tienda.
// Inmutable después de creado; Number lo asigna la base de datos.
type Order struct {
	Number      int64
	CustomerID  int64
	StoreID     int64
	ProductName string
	Units       int64
	OrderTime   time.Time
}
