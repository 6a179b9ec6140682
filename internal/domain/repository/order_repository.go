package repository

import (
	"time"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order, items []*entity.OrderItem) (int64, error)
	GetByID(id int64) (*entity.Order, error)
	ListItems(orderID int64) ([]*entity.OrderItem, error)
	UpdateStatus(orderID int64, status string) (bool, error)
	ListByDateRange(from, to *time.Time, limit, offset int) ([]*entity.Order, error)
}

// PaymentRepository define el puerto de persistencia para cobros.
type PaymentRepository interface {
	Create(payment *entity.Payment) (int64, error)
	GetByOrder(orderID int64) (*entity.Payment, error)
	UpdateStatus(paymentID int64, status string) (bool, error)
}
