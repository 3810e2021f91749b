package geo

import "math"

// NearbyRadius es el radio (en unidades del plano) dentro del cual una tienda
// se considera "cercana" al usuario.
const NearbyRadius = 30.0

// Point posición geográfica en el plano de la cadena (latitud y longitud en [0,100]).
type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance distancia euclidiana entre dos posiciones.
func Distance(a, b Point) float64 {
	dLat := a.Latitude - b.Latitude
	dLong := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat + dLong*dLong)
}

// WithinRadius reporta si b está a menos de radius unidades de a.
func WithinRadius(a, b Point, radius float64) bool {
	return Distance(a, b) < radius
}
