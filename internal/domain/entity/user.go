package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// User representa a un usuario (principal) del sistema. Nunca se borra físicamente.
type User struct {
	ID           int64
	Name         string
	CPF          string
	Email        string
	PasswordHash string // bcrypt; no sale nunca en respuestas
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // nil = activo
}

// IsActive indica si el usuario no fue dado de baja.
func (u *User) IsActive() bool {
	return u != nil && u.DeletedAt == nil
}

// NormalizeEmail deja el email en la forma canónica usada para guardar y buscar.
// cases.Caser guarda estado, por eso se crea uno por llamada.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
