package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.StockModificationRepository = (*StockModificationRepo)(nil)

// StockModificationRepo implementación del libro de modificaciones sobre
// PostgreSQL (usable con pool o tx). Solo inserta y lista: los asientos no se
// editan ni se borran.
type StockModificationRepo struct {
	q Querier
}

// NewStockModificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockModificationRepository(q Querier) *StockModificationRepo {
	return &StockModificationRepo{q: q}
}

// Insert persiste un asiento de cambio de campo y devuelve el id asignado.
func (r *StockModificationRepo) Insert(mod *entity.StockModification) (int64, error) {
	query := `
		INSERT INTO stock_modifications (stock_id, product_id, user_id, old_value, new_value, modification_date, modification_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		mod.StockID, mod.ProductID, mod.UserID, mod.OldValue,
		mod.NewValue, mod.ModificationDate, mod.ModificationType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert modification: %w", err)
	}
	return id, nil
}

// ListByProductName lista los asientos de un producto por nombre, acotados
// opcionalmente por rango de fechas.
func (r *StockModificationRepo) ListByProductName(productName string, from, to *time.Time) ([]*entity.StockModification, error) {
	query := `
		SELECT m.id, m.stock_id, m.product_id, m.user_id, m.old_value, m.new_value, m.modification_date, m.modification_type
		FROM stock_modifications m
		JOIN products p ON p.id = m.product_id
		WHERE p.name = $1`
	args := []any{productName}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND m.modification_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND m.modification_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY m.modification_date DESC, m.id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list modifications by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockModification
	for rows.Next() {
		var m entity.StockModification
		if err := rows.Scan(&m.ID, &m.StockID, &m.ProductID, &m.UserID, &m.OldValue,
			&m.NewValue, &m.ModificationDate, &m.ModificationType); err != nil {
			return nil, fmt.Errorf("scan modification: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
