package repository

import "github.com/tu-usuario/pasteleria-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo.
type ProductRepository interface {
	Create(product *entity.Product) (int64, error)
	GetByID(id int64) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) (bool, error)
	List(onlyAvailable bool, limit, offset int) ([]*entity.Product, error)
}
