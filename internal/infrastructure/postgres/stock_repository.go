package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const stockLotColumns = `id, product_id, quantity, expiration_date, expiration_warning_days, is_active, is_warning, added_date`

// ListByProduct lista los lotes de un producto en orden FIFO: fecha de alta
// ascendente, desempate por id.
func (r *StockLotRepo) ListByProduct(productID int64) ([]*entity.StockLot, error) {
	return r.listByProduct(productID, "")
}

// ListByProductForUpdate es ListByProduct con bloqueo de fila (SELECT FOR
// UPDATE); lo usa el asignador dentro de la transacción.
func (r *StockLotRepo) ListByProductForUpdate(productID int64) ([]*entity.StockLot, error) {
	return r.listByProduct(productID, " FOR UPDATE")
}

func (r *StockLotRepo) listByProduct(productID int64, lock string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + stockLotColumns + `
		FROM stock_lots WHERE product_id = $1
		ORDER BY added_date, id` + lock
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

// GetByID obtiene un lote por id. Devuelve nil, nil si no existe.
func (r *StockLotRepo) GetByID(id int64) (*entity.StockLot, error) {
	return r.getByID(id, "")
}

// GetForUpdate obtiene el lote y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockLotRepo) GetForUpdate(id int64) (*entity.StockLot, error) {
	return r.getByID(id, " FOR UPDATE")
}

func (r *StockLotRepo) getByID(id int64, lock string) (*entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots WHERE id = $1` + lock
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// Insert persiste un lote nuevo y devuelve el id asignado.
func (r *StockLotRepo) Insert(lot *entity.StockLot) (int64, error) {
	query := `
		INSERT INTO stock_lots (product_id, quantity, expiration_date, expiration_warning_days, is_active, is_warning, added_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		lot.ProductID, lot.Quantity, lot.ExpirationDate, lot.ExpirationWarningDays,
		lot.IsActive, lot.IsWarning, lot.AddedDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert lot: %w", err)
	}
	return id, nil
}

// Update persiste el estado completo de un lote. AddedDate no se toca.
func (r *StockLotRepo) Update(lot *entity.StockLot) (bool, error) {
	query := `
		UPDATE stock_lots
		SET quantity = $2, expiration_date = $3, expiration_warning_days = $4, is_active = $5, is_warning = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.Quantity, lot.ExpirationDate, lot.ExpirationWarningDays,
		lot.IsActive, lot.IsWarning,
	)
	if err != nil {
		return false, fmt.Errorf("update lot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// TotalActiveQuantity suma las unidades de los lotes activos de un producto.
func (r *StockLotRepo) TotalActiveQuantity(productID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_lots WHERE product_id = $1 AND is_active`
	var total int
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total active quantity: %w", err)
	}
	return total, nil
}

// ListActiveProductIDs devuelve los productos con al menos un lote activo.
func (r *StockLotRepo) ListActiveProductIDs() ([]int64, error) {
	query := `SELECT DISTINCT product_id FROM stock_lots WHERE is_active ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active product ids: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.Quantity, &l.ExpirationDate,
		&l.ExpirationWarningDays, &l.IsActive, &l.IsWarning, &l.AddedDate,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
