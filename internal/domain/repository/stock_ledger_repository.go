package repository

import (
	"time"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
)

// StockTransactionRepository define el puerto del libro de transacciones de
// cantidad. Append-only: Update existe únicamente para la conversión
// Sale -> Return durante una devolución.
type StockTransactionRepository interface {
	Insert(tx *entity.StockTransaction) (int64, error)
	Update(tx *entity.StockTransaction) (bool, error)
	ListByOrder(orderID int64) ([]*entity.StockTransaction, error)
	ListByProductName(productName string, from, to *time.Time) ([]*entity.StockTransaction, error)
}

// StockModificationRepository define el puerto del libro de modificaciones de
// campos (vencimiento, umbral de aviso, estado). Estrictamente append-only.
type StockModificationRepository interface {
	Insert(mod *entity.StockModification) (int64, error)
	ListByProductName(productName string, from, to *time.Time) ([]*entity.StockModification, error)
}
