package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pasteleria-pos/internal/domain"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del catálogo sobre PostgreSQL. El payload de la
// variante (comida, bebida, accesorio) va en una columna JSONB según type.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, type, name, description, price, discount, is_available, is_featured, created_date, updated_date, details`

// Create persiste una variante del catálogo y devuelve el id asignado.
// Devuelve ErrDuplicate si el nombre ya existe.
func (r *ProductRepo) Create(p *entity.Product) (int64, error) {
	details, err := marshalDetails(p)
	if err != nil {
		return 0, err
	}
	query := `
		INSERT INTO products (type, name, description, price, discount, is_available, is_featured, created_date, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8)
		RETURNING id, created_date`
	var id int64
	err = r.q.QueryRow(context.Background(), query,
		p.Type, p.Name, p.Description, p.Price, p.Discount,
		p.IsAvailable, p.IsFeatured, details,
	).Scan(&id, &p.CreatedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por id. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName obtiene un producto por nombre exacto. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// Update persiste la base común y el payload de una variante.
func (r *ProductRepo) Update(p *entity.Product) (bool, error) {
	details, err := marshalDetails(p)
	if err != nil {
		return false, err
	}
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, discount = $5,
		    is_available = $6, is_featured = $7, updated_date = now(), details = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Price, p.Discount,
		p.IsAvailable, p.IsFeatured, details,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List lista el catálogo paginado; con onlyAvailable se filtran las bajas.
func (r *ProductRepo) List(onlyAvailable bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyAvailable {
		query += ` WHERE is_available`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func marshalDetails(p *entity.Product) ([]byte, error) {
	var payload any
	switch p.Type {
	case entity.ProductFood:
		payload = p.Food
	case entity.ProductDrink:
		payload = p.Drink
	case entity.ProductAccessory:
		payload = p.Accessory
	default:
		return nil, fmt.Errorf("tipo de producto desconocido: %q", p.Type)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}
	return data, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var details []byte
	err := row.Scan(
		&p.ID, &p.Type, &p.Name, &p.Description, &p.Price, &p.Discount,
		&p.IsAvailable, &p.IsFeatured, &p.CreatedDate, &p.UpdatedDate, &details,
	)
	if err != nil {
		return nil, err
	}
	switch p.Type {
	case entity.ProductFood:
		p.Food = &entity.FoodDetails{}
		err = json.Unmarshal(details, p.Food)
	case entity.ProductDrink:
		p.Drink = &entity.DrinkDetails{}
		err = json.Unmarshal(details, p.Drink)
	case entity.ProductAccessory:
		p.Accessory = &entity.AccessoryDetails{}
		err = json.Unmarshal(details, p.Accessory)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal details: %w", err)
	}
	return &p, nil
}
