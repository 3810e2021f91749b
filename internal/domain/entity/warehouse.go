package entity

// Warehouse bodega desde la que se surten las tiendas. Solo lectura aquí:
// los flujos la consultan para validar solicitudes de reposición.
type Warehouse struct {
	ID        int64
	Area      int64
	Latitude  float64
	Longitude float64
}
