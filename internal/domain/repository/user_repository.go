package repository

import "github.com/tu-usuario/pasteleria-pos/internal/domain/entity"

// UserRepository define el puerto de persistencia para empleados.
type UserRepository interface {
	Create(user *entity.User) (int64, error)
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) (bool, error)
	List(limit, offset int) ([]*entity.User, error)
}
