package repository

import "time"

// StockWarning fila del panel de alertas: lote activo en aviso, con el nombre
// del producto ya resuelto.
type StockWarning struct {
	StockID               int64
	ProductID             int64
	ProductName           string
	Quantity              int
	ExpirationDate        *time.Time
	ExpirationWarningDays *int
}

// StockSummary agregado de movimientos de un producto en un rango de fechas.
type StockSummary struct {
	ProductID          int64
	TotalQuantity      int
	TotalAdded         int
	TotalSold          int
	TotalModifications int
}

// StockReportRepository define el puerto de consultas agregadas de stock
// (solo lectura, para los paneles de gestión).
type StockReportRepository interface {
	ListWarnings() ([]*StockWarning, error)
	Summaries(productName string, from, to *time.Time) ([]*StockSummary, error)
}
