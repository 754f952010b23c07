package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleRetailer = "retailer"
	RoleStaff    = "staff"
)

// User representa una cuenta del sistema. El core solo la lee (reportes,
// filtro de acciones gerenciales); las cuentas se crean vía seed o por el
// subsistema de autenticación externo.
type User struct {
	ID            int64
	Username      string
	FullName      string
	Email         string
	Role          string // admin, manager, retailer, staff
	PasswordHash  string // bcrypt, nunca plano después de persistir
	Status        string // active, inactive
	HasProfilePic bool
	CreatedAt     time.Time
}

// Managerial indica si el rol puede ejecutar acciones auditadas del ledger.
func (u *User) Managerial() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
