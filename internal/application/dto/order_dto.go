package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del carrito al crear un pedido.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	CardNumber    *string            `json:"card_number,omitempty"`
}

// OrderItemDTO línea de pedido con precio congelado.
type OrderItemDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderDTO proyección de un pedido.
type OrderDTO struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	OrderDate  time.Time       `json:"order_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	Items      []OrderItemDTO  `json:"items,omitempty"`
}

// PaymentDTO proyección del cobro de un pedido.
type PaymentDTO struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Reference     string          `json:"reference"`
	PaymentDate   time.Time       `json:"payment_date"`
}
