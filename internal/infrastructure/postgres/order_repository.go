package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)
var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// OrderRepo implementación de pedidos sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus líneas y devuelve el id asignado.
func (r *OrderRepo) Create(order *entity.Order, items []*entity.OrderItem) (int64, error) {
	ctx := context.Background()
	query := `
		INSERT INTO orders (user_id, order_date, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		order.UserID, order.OrderDate, order.TotalPrice, order.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	for _, it := range items {
		it.OrderID = id
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			id, it.ProductID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return 0, fmt.Errorf("create order item: %w", err)
		}
	}
	return id, nil
}

// GetByID obtiene un pedido por id. Devuelve nil, nil si no existe.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	query := `SELECT id, user_id, order_date, total_price, status FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.UserID, &o.OrderDate, &o.TotalPrice, &o.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListItems lista las líneas de un pedido.
func (r *OrderRepo) ListItems(orderID int64) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de un pedido.
func (r *OrderRepo) UpdateStatus(orderID int64, status string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByDateRange lista pedidos acotados opcionalmente por fechas, del más
// reciente al más viejo.
func (r *OrderRepo) ListByDateRange(from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT id, user_id, order_date, total_price, status FROM orders WHERE true`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND order_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND order_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY order_date DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.TotalPrice, &o.Status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// PaymentRepo implementación de cobros sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de cobros. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un cobro y devuelve el id asignado.
func (r *PaymentRepo) Create(p *entity.Payment) (int64, error) {
	query := `
		INSERT INTO payments (user_id, order_id, payment_method, payment_status, amount_paid, card_number, reference, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		p.UserID, p.OrderID, p.PaymentMethod, p.PaymentStatus,
		p.AmountPaid, p.CardNumber, p.Reference, p.PaymentDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create payment: %w", err)
	}
	return id, nil
}

// GetByOrder obtiene el cobro de un pedido. Devuelve nil, nil si no existe.
func (r *PaymentRepo) GetByOrder(orderID int64) (*entity.Payment, error) {
	query := `
		SELECT id, user_id, order_id, payment_method, payment_status, amount_paid, card_number, reference, payment_date
		FROM payments WHERE order_id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&p.ID, &p.UserID, &p.OrderID, &p.PaymentMethod, &p.PaymentStatus,
		&p.AmountPaid, &p.CardNumber, &p.Reference, &p.PaymentDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// UpdateStatus cambia el estado de un cobro.
func (r *PaymentRepo) UpdateStatus(paymentID int64, status string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE payments SET payment_status = $2 WHERE id = $1`, paymentID, status)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
