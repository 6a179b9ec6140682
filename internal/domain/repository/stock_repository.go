package repository

import "github.com/tu-usuario/pasteleria-pos/internal/domain/entity"

// StockLotRepository define el puerto de persistencia para lotes de stock.
// ListByProduct devuelve los lotes ordenados por added_date ascendente con
// desempate por id, que es el orden de consumo FIFO del asignador.
type StockLotRepository interface {
	ListByProduct(productID int64) ([]*entity.StockLot, error)
	GetByID(id int64) (*entity.StockLot, error)
	// Variantes con bloqueo de fila (SELECT FOR UPDATE); solo tienen sentido
	// dentro de una transacción.
	ListByProductForUpdate(productID int64) ([]*entity.StockLot, error)
	GetForUpdate(id int64) (*entity.StockLot, error)
	Insert(lot *entity.StockLot) (int64, error)
	Update(lot *entity.StockLot) (bool, error)
	TotalActiveQuantity(productID int64) (int, error)
	// ListActiveProductIDs devuelve los productos con al menos un lote activo
	// (para el barrido programado de vencimientos).
	ListActiveProductIDs() ([]int64, error)
}
