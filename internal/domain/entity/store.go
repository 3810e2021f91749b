package entity

import (
	"time"

	"github.com/jhoicas/retail-ops/internal/domain/geo"
)

// Store representa una tienda de la cadena. Solo lectura para los flujos de
// esta aplicación; ManagerID referencia al User que la administra.
type Store struct {
	ID              int64
	Name            string
	Latitude        float64
	Longitude       float64
	ManagerID       int64
	DateEstablished time.Time
}

// Position posición de la tienda en el plano de la cadena.
func (s *Store) Position() geo.Point {
	return geo.Point{Latitude: s.Latitude, Longitude: s.Longitude}
}
