package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

var _ repository.StockReportRepository = (*StockReportRepo)(nil)

// StockReportRepo consultas agregadas de stock sobre PostgreSQL (solo lectura,
// siempre atado al pool).
type StockReportRepo struct {
	q Querier
}

// NewStockReportRepository construye el adaptador de reportes.
func NewStockReportRepository(q Querier) *StockReportRepo {
	return &StockReportRepo{q: q}
}

// ListWarnings lista los lotes activos en aviso de vencimiento con el nombre
// del producto resuelto, ordenados por urgencia.
func (r *StockReportRepo) ListWarnings() ([]*repository.StockWarning, error) {
	query := `
		SELECT s.id, s.product_id, p.name, s.quantity, s.expiration_date, s.expiration_warning_days
		FROM stock_lots s
		JOIN products p ON p.id = s.product_id
		WHERE s.is_active AND s.is_warning
		ORDER BY s.expiration_date, s.id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list warnings: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockWarning
	for rows.Next() {
		var w repository.StockWarning
		if err := rows.Scan(&w.StockID, &w.ProductID, &w.ProductName, &w.Quantity,
			&w.ExpirationDate, &w.ExpirationWarningDays); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Summaries agrega movimientos por producto: stock activo corriente, unidades
// dadas de alta, unidades vendidas y cantidad de modificaciones en el rango.
func (r *StockReportRepo) Summaries(productName string, from, to *time.Time) ([]*repository.StockSummary, error) {
	query := `
		WITH matched AS (
			SELECT id, name FROM products WHERE name ILIKE '%' || $1 || '%'
		),
		tx AS (
			SELECT t.product_id,
			       COALESCE(SUM(t.quantity_changed) FILTER (WHERE t.transaction_type = 'Addition'), 0) AS total_added,
			       COALESCE(SUM(-t.quantity_changed) FILTER (WHERE t.transaction_type = 'Sale'), 0)    AS total_sold
			FROM stock_transactions t
			JOIN matched mp ON mp.id = t.product_id
			WHERE ($2::timestamptz IS NULL OR t.transaction_date >= $2)
			  AND ($3::timestamptz IS NULL OR t.transaction_date <= $3)
			GROUP BY t.product_id
		),
		mods AS (
			SELECT m.product_id, COUNT(*) AS total_modifications
			FROM stock_modifications m
			JOIN matched mp ON mp.id = m.product_id
			WHERE ($2::timestamptz IS NULL OR m.modification_date >= $2)
			  AND ($3::timestamptz IS NULL OR m.modification_date <= $3)
			GROUP BY m.product_id
		),
		active AS (
			SELECT s.product_id, COALESCE(SUM(s.quantity), 0) AS total_quantity
			FROM stock_lots s
			JOIN matched mp ON mp.id = s.product_id
			WHERE s.is_active
			GROUP BY s.product_id
		)
		SELECT mp.id,
		       COALESCE(a.total_quantity, 0),
		       COALESCE(tx.total_added, 0),
		       COALESCE(tx.total_sold, 0),
		       COALESCE(mods.total_modifications, 0)
		FROM matched mp
		LEFT JOIN active a ON a.product_id = mp.id
		LEFT JOIN tx ON tx.product_id = mp.id
		LEFT JOIN mods ON mods.product_id = mp.id
		ORDER BY mp.id`
	rows, err := r.q.Query(context.Background(), query, productName, from, to)
	if err != nil {
		return nil, fmt.Errorf("stock summaries: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockSummary
	for rows.Next() {
		var s repository.StockSummary
		if err := rows.Scan(&s.ProductID, &s.TotalQuantity, &s.TotalAdded,
			&s.TotalSold, &s.TotalModifications); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
