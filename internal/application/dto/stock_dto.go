package dto

import "time"

// AddStockRequest body para POST /api/stocks.
type AddStockRequest struct {
	ProductID             int64      `json:"product_id"`
	Quantity              int        `json:"quantity"`
	ExpirationDate        *time.Time `json:"expiration_date,omitempty"`
	ExpirationWarningDays *int       `json:"expiration_warning_days,omitempty"`
}

// EditStockRequest body para PUT /api/stocks/:id. Los campos nil se conservan.
type EditStockRequest struct {
	Quantity              *int       `json:"quantity,omitempty"`
	ExpirationDate        *time.Time `json:"expiration_date,omitempty"`
	ExpirationWarningDays *int       `json:"expiration_warning_days,omitempty"`
	IsActive              *bool      `json:"is_active,omitempty"`
}

// StockLotDTO proyección de un lote para la gestión de stock.
type StockLotDTO struct {
	ID                    int64      `json:"id"`
	ProductID             int64      `json:"product_id"`
	Quantity              int        `json:"quantity"`
	ExpirationDate        *time.Time `json:"expiration_date,omitempty"`
	ExpirationWarningDays *int       `json:"expiration_warning_days,omitempty"`
	IsActive              bool       `json:"is_active"`
	IsWarning             bool       `json:"is_warning"`
	AddedDate             time.Time  `json:"added_date"`
}

// StockTransactionDTO proyección de un asiento de cantidad.
type StockTransactionDTO struct {
	ID              int64     `json:"id"`
	StockID         int64     `json:"stock_id"`
	ProductID       int64     `json:"product_id"`
	OrderID         *int64    `json:"order_id,omitempty"`
	UserID          int64     `json:"user_id"`
	QuantityChanged int       `json:"quantity_changed"`
	TransactionDate time.Time `json:"transaction_date"`
	TransactionType string    `json:"transaction_type"`
}

// StockModificationDTO proyección de un asiento de cambio de campo.
type StockModificationDTO struct {
	ID               int64     `json:"id"`
	StockID          int64     `json:"stock_id"`
	ProductID        int64     `json:"product_id"`
	UserID           int64     `json:"user_id"`
	OldValue         string    `json:"old_value"`
	NewValue         string    `json:"new_value"`
	ModificationDate time.Time `json:"modification_date"`
	ModificationType string    `json:"modification_type"`
}

// StockWarningDTO lote en aviso de vencimiento, con el nombre del producto
// para el panel de alertas.
type StockWarningDTO struct {
	StockID               int64      `json:"stock_id"`
	ProductID             int64      `json:"product_id"`
	ProductName           string     `json:"product_name"`
	Quantity              int        `json:"quantity"`
	ExpirationDate        *time.Time `json:"expiration_date,omitempty"`
	ExpirationWarningDays *int       `json:"expiration_warning_days,omitempty"`
}

// StockSummaryDTO agregado de movimientos por producto en un rango de fechas.
type StockSummaryDTO struct {
	ProductID          int64 `json:"product_id"`
	TotalQuantity      int   `json:"total_quantity"`
	TotalAdded         int   `json:"total_added"`
	TotalSold          int   `json:"total_sold"`
	TotalModifications int   `json:"total_modifications"`
}
