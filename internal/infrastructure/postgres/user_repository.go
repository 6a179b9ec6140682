package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pasteleria-pos/internal/domain"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, password_hash, first_name, last_name, phone_number, address, hire_date, salary, last_login, role, is_active, force_password_change`

// Create persiste un empleado y devuelve el id asignado. Devuelve
// ErrUsernameTaken si el username ya existe.
func (r *UserRepo) Create(u *entity.User) (int64, error) {
	query := `
		INSERT INTO users (username, password_hash, first_name, last_name, phone_number, address, hire_date, salary, role, is_active, force_password_change)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNumber,
		u.Address, u.HireDate, u.Salary, u.Role, u.IsActive, u.ForcePasswordChange,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUsernameTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// GetByID obtiene un empleado por id. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un empleado por username. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Update persiste el estado completo de un empleado.
func (r *UserRepo) Update(u *entity.User) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = $2, first_name = $3, last_name = $4, phone_number = $5,
		    address = $6, salary = $7, last_login = $8, role = $9, is_active = $10,
		    force_password_change = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.ID, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNumber,
		u.Address, u.Salary, u.LastLogin, u.Role, u.IsActive, u.ForcePasswordChange,
	)
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List lista empleados paginados por fecha de alta.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY hire_date, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Address, &u.HireDate, &u.Salary, &u.LastLogin,
		&u.Role, &u.IsActive, &u.ForcePasswordChange,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
