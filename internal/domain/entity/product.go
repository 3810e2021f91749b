package entity

import "github.com/shopspring/decimal"

// Product representa un producto en el catálogo de una tienda.
// La clave es compuesta (StoreID, Name); Units nunca es negativo.
type Product struct {
	StoreID int64
	Name    string
	Units   int64
	Price   decimal.Decimal
}
