package entity

import (
	"time"

	"github.com/jhoicas/retail-ops/internal/domain/geo"
)

// Roles válidos para User.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// ValidRole reporta si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User representa un actor del sistema. El ID lo asigna la base de datos
// (secuencia), nunca el proceso.
type User struct {
	ID           int64
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Latitude     float64
	Longitude    float64
	Role         string // customer, manager, admin
	CreatedAt    time.Time
}

// Position posición del usuario en el plano de la cadena.
func (u *User) Position() geo.Point {
	return geo.Point{Latitude: u.Latitude, Longitude: u.Longitude}
}
