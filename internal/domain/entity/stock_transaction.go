package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionAddition   = "Addition"   // alta de lote / compra
	TransactionSale       = "Sale"       // venta
	TransactionReturn     = "Return"     // devolución por cancelación
	TransactionAdjustment = "Adjustment" // corrección administrativa
)

// StockTransaction es el asiento inmutable del libro de cambios de cantidad
// sobre un lote. Solo la reconciliación de devoluciones muta un asiento ya
// existente (Sale -> Return); todo lo demás es append-only.
type StockTransaction struct {
	ID              int64
	StockID         int64 // lote dueño
	ProductID       int64
	OrderID         *int64 // nil para altas/ajustes sin pedido
	UserID          int64
	QuantityChanged int // delta firmado; magnitud absoluta tras pasar a Return
	TransactionDate time.Time
	TransactionType string
}
