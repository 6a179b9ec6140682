package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token + datos básicos del usuario autenticado.
type LoginResponse struct {
	Token               string  `json:"token"`
	User                UserDTO `json:"user"`
	ForcePasswordChange bool    `json:"force_password_change"`
}

// RegisterUserRequest body para POST /api/users (solo Manager).
type RegisterUserRequest struct {
	Username    string          `json:"username"`
	Password    string          `json:"password"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	Address     *string         `json:"address,omitempty"`
	Salary      decimal.Decimal `json:"salary"`
	Role        string          `json:"role"`
}

// ChangePasswordRequest body para PUT /api/users/me/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangeRoleRequest body para PUT /api/users/:id/role (solo Manager).
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// UserDTO proyección de un empleado, sin credenciales.
type UserDTO struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber string     `json:"phone_number"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	HireDate    time.Time  `json:"hire_date"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}
