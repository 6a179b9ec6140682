package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleManager = "Manager"
	RoleCashier = "Cashier"
)

// User representa un empleado del local (gerente o cajero).
type User struct {
	ID                  int64
	Username            string
	PasswordHash        string // bcrypt, nunca en claro después de persistir
	FirstName           string
	LastName            string
	PhoneNumber         string
	Address             *string
	HireDate            time.Time
	Salary              decimal.Decimal
	LastLogin           *time.Time
	Role                string // Manager, Cashier
	IsActive            bool
	ForcePasswordChange bool
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
