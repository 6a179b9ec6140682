package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderCompleted = "Completed"
	OrderCancelled = "Cancelled"
	OrderOnHold    = "OnHold"
)

// Estados y métodos de pago.
const (
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
	PaymentRefunded  = "Refunded"

	PaymentMethodCash = "Cash"
	PaymentMethodCard = "Card"
)

// Order representa un pedido de caja.
type Order struct {
	ID         int64
	UserID     int64 // cajero que registró el pedido
	OrderDate  time.Time
	TotalPrice decimal.Decimal
	Status     string
}

// OrderItem es una línea del pedido con el precio congelado al momento de la venta.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal // precio final (con descuento) por unidad
}

// Payment representa el cobro de un pedido.
type Payment struct {
	ID            int64
	UserID        int64
	OrderID       int64
	PaymentMethod string
	PaymentStatus string
	AmountPaid    decimal.Decimal
	CardNumber    *string // enmascarado, solo últimos 4 dígitos
	Reference     string  // código de recibo (uuid)
	PaymentDate   time.Time
}
