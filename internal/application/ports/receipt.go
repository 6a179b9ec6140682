package ports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine línea impresa del recibo.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptData todo lo que el recibo necesita, ya resuelto por el caso de uso.
type ReceiptData struct {
	OrderID       int64
	OrderDate     time.Time
	CashierName   string
	Lines         []ReceiptLine
	TotalPrice    decimal.Decimal
	PaymentMethod string
	CardNumber    *string // ya enmascarado
	Reference     string
}

// ReceiptGenerator genera el recibo de un pedido como PDF.
type ReceiptGenerator interface {
	GenerateReceipt(data ReceiptData) ([]byte, error)
}
