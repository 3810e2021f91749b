// Package session define el estado de la sesión interactiva: quién es el actor
// autenticado. La sesión es estado explícito que se pasa a cada flujo, no una
// variable global; así pueden coexistir varias sesiones en tests o en un
// futuro front end multiusuario.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session identidad del actor autenticado durante una sesión interactiva.
// Role es el rol resuelto en el login; las decisiones de autorización NO lo
// usan directamente, el guard lo vuelve a leer de la base en cada operación
// para reflejar ediciones concurrentes de un admin.
type Session struct {
	ID         string // uuid, correlación en logs
	UserID     int64
	Name       string
	Role       string
	LoggedInAt time.Time
}

// New crea la sesión de un login exitoso.
func New(userID int64, name, role string) *Session {
	return &Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       name,
		Role:       role,
		LoggedInAt: time.Now(),
	}
}
