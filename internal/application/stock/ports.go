package stock

import (
	"context"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada operación pública del motor de stock
// (alta, edición, venta, devolución, barrido de vencimientos) corre completa
// dentro de una transacción; el asiento por lote no cambia.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lots repository.StockLotRepository,
		txs repository.StockTransactionRepository,
		mods repository.StockModificationRepository,
	) error) error
}
