package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del libro de transacciones sobre
// PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Insert persiste un asiento de cantidad y devuelve el id asignado.
func (r *StockTransactionRepo) Insert(tx *entity.StockTransaction) (int64, error) {
	query := `
		INSERT INTO stock_transactions (stock_id, product_id, order_id, user_id, quantity_changed, transaction_date, transaction_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		tx.StockID, tx.ProductID, tx.OrderID, tx.UserID,
		tx.QuantityChanged, tx.TransactionDate, tx.TransactionType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// Update reescribe un asiento existente. El único caso de uso es la conversión
// Sale -> Return de la devolución; el libro no se borra nunca.
func (r *StockTransactionRepo) Update(tx *entity.StockTransaction) (bool, error) {
	query := `
		UPDATE stock_transactions
		SET quantity_changed = $2, transaction_date = $3, transaction_type = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.QuantityChanged, tx.TransactionDate, tx.TransactionType,
	)
	if err != nil {
		return false, fmt.Errorf("update transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByOrder lista los asientos de un pedido en orden de inserción.
func (r *StockTransactionRepo) ListByOrder(orderID int64) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, stock_id, product_id, order_id, user_id, quantity_changed, transaction_date, transaction_type
		FROM stock_transactions WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.StockID, &t.ProductID, &t.OrderID, &t.UserID,
			&t.QuantityChanged, &t.TransactionDate, &t.TransactionType); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListByProductName lista los asientos de un producto por nombre, acotados
// opcionalmente por rango de fechas.
func (r *StockTransactionRepo) ListByProductName(productName string, from, to *time.Time) ([]*entity.StockTransaction, error) {
	query := `
		SELECT t.id, t.stock_id, t.product_id, t.order_id, t.user_id, t.quantity_changed, t.transaction_date, t.transaction_type
		FROM stock_transactions t
		JOIN products p ON p.id = t.product_id
		WHERE p.name = $1`
	args := []any{productName}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND t.transaction_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY t.transaction_date DESC, t.id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.StockID, &t.ProductID, &t.OrderID, &t.UserID,
			&t.QuantityChanged, &t.TransactionDate, &t.TransactionType); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
