package stock

import (
	"context"
	"strconv"
	"time"

	"github.com/tu-usuario/pasteleria-pos/internal/application/dto"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
	stockdomain "github.com/tu-usuario/pasteleria-pos/internal/domain/stock"
	"github.com/tu-usuario/pasteleria-pos/pkg/logger"
)

// UseCase es el motor de stock: asignación FIFO de ventas contra lotes,
// recálculo de avisos de vencimiento, libro de transacciones/modificaciones y
// reconciliación de devoluciones.
//
// Contrato de errores: las operaciones absorben los fallos de persistencia en
// esta frontera — registran con contexto y devuelven false/0/vacío, nunca
// propagan pánico ni excepción al caller.
type UseCase struct {
	txRunner   TxRunner
	lotRepo    repository.StockLotRepository
	txRepo     repository.StockTransactionRepository
	modRepo    repository.StockModificationRepository
	reportRepo repository.StockReportRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el motor de stock. Los repositorios sueltos van atados
// al pool (proyecciones de solo lectura); las mutaciones corren por txRunner.
func NewUseCase(
	txRunner TxRunner,
	lotRepo repository.StockLotRepository,
	txRepo repository.StockTransactionRepository,
	modRepo repository.StockModificationRepository,
	reportRepo repository.StockReportRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		lotRepo:    lotRepo,
		txRepo:     txRepo,
		modRepo:    modRepo,
		reportRepo: reportRepo,
		log:        log,
		now:        time.Now,
	}
}

// UpdateStockInput entrada para la edición de un lote. Los campos puntero nil
// conservan el valor persistido; AddedDate nunca se actualiza.
type UpdateStockInput struct {
	ID                    int64
	UserID                int64
	OrderID               *int64
	Quantity              *int
	ExpirationDate        *time.Time
	ExpirationWarningDays *int
	IsActive              *bool
	IsWarning             *bool
	TransactionType       string
}

// CreateStock da de alta un lote: activo, AddedDate = ahora, IsWarning
// calculado con la misma ventana de días que el barrido, y un asiento
// Addition por la cantidad inicial. Devuelve 0 si la operación falla.
func (uc *UseCase) CreateStock(ctx context.Context, userID int64, in dto.AddStockRequest) int64 {
	var newID int64
	err := uc.txRunner.Run(ctx, func(
		lots repository.StockLotRepository,
		txs repository.StockTransactionRepository,
		_ repository.StockModificationRepository,
	) error {
		now := uc.now()
		lot := &entity.StockLot{
			ProductID:             in.ProductID,
			Quantity:              in.Quantity,
			ExpirationDate:        in.ExpirationDate,
			ExpirationWarningDays: in.ExpirationWarningDays,
			IsActive:              true,
			IsWarning:             stockdomain.InWarningWindow(in.ExpirationDate, in.ExpirationWarningDays, now),
			AddedDate:             now,
		}
		id, err := lots.Insert(lot)
		if err != nil {
			return err
		}
		newID = id

		_, err = txs.Insert(&entity.StockTransaction{
			StockID:         id,
			ProductID:       in.ProductID,
			OrderID:         nil,
			UserID:          userID,
			QuantityChanged: in.Quantity,
			TransactionDate: now,
			TransactionType: entity.TransactionAddition,
		})
		return err
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", in.ProductID).Msg("alta de lote fallida")
		return 0
	}
	return newID
}

// UpdateStock edita un lote por id registrando en el libro cada cambio real:
// delta de cantidad como transacción, vencimiento/umbral/estado como
// modificaciones. Devuelve false si el lote no existe o la escritura falla.
func (uc *UseCase) UpdateStock(ctx context.Context, in UpdateStockInput) bool {
	var updated bool
	err := uc.txRunner.Run(ctx, func(
		lots repository.StockLotRepository,
		txs repository.StockTransactionRepository,
		mods repository.StockModificationRepository,
	) error {
		ok, err := uc.applyUpdate(lots, txs, mods, in)
		updated = ok
		return err
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("stock_id", in.ID).Msg("edición de lote fallida")
		return false
	}
	return updated
}

// applyUpdate es el camino único de escritura de un lote (§ libro + estado):
// lo usan la edición directa, el asignador de ventas y el barrido de
// vencimientos, para que el recálculo de avisos y los asientos salgan siempre
// por el mismo lugar. Devuelve (false, nil) si el lote no existe.
func (uc *UseCase) applyUpdate(
	lots repository.StockLotRepository,
	txs repository.StockTransactionRepository,
	mods repository.StockModificationRepository,
	in UpdateStockInput,
) (bool, error) {
	// applyUpdate corre siempre dentro de una transacción: la fila se bloquea.
	old, err := lots.GetForUpdate(in.ID)
	if err != nil {
		return false, err
	}
	if old == nil {
		uc.log.Warn().Int64("stock_id", in.ID).Msg("lote no encontrado")
		return false, nil
	}

	now := uc.now()

	updated := *old // AddedDate se conserva siempre
	if in.Quantity != nil {
		updated.Quantity = *in.Quantity
	}
	if in.ExpirationDate != nil {
		updated.ExpirationDate = in.ExpirationDate
	}
	if in.ExpirationWarningDays != nil {
		updated.ExpirationWarningDays = in.ExpirationWarningDays
	}
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}
	if in.IsWarning != nil {
		updated.IsWarning = *in.IsWarning
	}

	if in.Quantity != nil && *in.Quantity != old.Quantity {
		_, err := txs.Insert(&entity.StockTransaction{
			StockID:         old.ID,
			ProductID:       old.ProductID,
			OrderID:         in.OrderID,
			UserID:          in.UserID,
			QuantityChanged: *in.Quantity - old.Quantity,
			TransactionDate: now,
			TransactionType: in.TransactionType,
		})
		if err != nil {
			return false, err
		}
	}

	if in.ExpirationDate != nil && !sameDate(old.ExpirationDate, in.ExpirationDate) {
		_, err := mods.Insert(&entity.StockModification{
			StockID:          old.ID,
			ProductID:        old.ProductID,
			UserID:           in.UserID,
			OldValue:         formatDate(old.ExpirationDate),
			NewValue:         formatDate(in.ExpirationDate),
			ModificationDate: now,
			ModificationType: entity.ModificationExpirationDate,
		})
		if err != nil {
			return false, err
		}
	}

	if in.ExpirationWarningDays != nil &&
		(old.ExpirationWarningDays == nil || *in.ExpirationWarningDays != *old.ExpirationWarningDays) {
		_, err := mods.Insert(&entity.StockModification{
			StockID:          old.ID,
			ProductID:        old.ProductID,
			UserID:           in.UserID,
			OldValue:         formatInt(old.ExpirationWarningDays),
			NewValue:         strconv.Itoa(*in.ExpirationWarningDays),
			ModificationDate: now,
			ModificationType: entity.ModificationWarningDays,
		})
		if err != nil {
			return false, err
		}
	}

	if in.IsActive != nil && *in.IsActive != old.IsActive {
		_, err := mods.Insert(&entity.StockModification{
			StockID:          old.ID,
			ProductID:        old.ProductID,
			UserID:           in.UserID,
			OldValue:         strconv.FormatBool(old.IsActive),
			NewValue:         strconv.FormatBool(*in.IsActive),
			ModificationDate: now,
			ModificationType: entity.ModificationStatus,
		})
		if err != nil {
			return false, err
		}
	}

	// El lote se persiste aunque ningún campo haya cambiado.
	return lots.Update(&updated)
}

// ReduceStock descuenta una venta contra los lotes activos del producto en
// orden FIFO por fecha de alta (desempate por id). Consume lotes parciales o
// completos hasta cubrir la cantidad; un lote agotado queda inactivo. Si los
// lotes no alcanzan, el faltante se descarta sin error: el asignador no
// garantiza contra sobreventa, solo contra vender lotes inactivos.
func (uc *UseCase) ReduceStock(ctx context.Context, productID int64, quantityToReduce int, userID int64, orderID *int64) {
	if quantityToReduce <= 0 {
		return
	}
	err := uc.txRunner.Run(ctx, func(
		lots repository.StockLotRepository,
		txs repository.StockTransactionRepository,
		mods repository.StockModificationRepository,
	) error {
		all, err := lots.ListByProductForUpdate(productID)
		if err != nil {
			return err
		}

		remaining := quantityToReduce
		for _, lot := range all {
			if remaining <= 0 {
				break
			}
			if !lot.IsActive || lot.Quantity <= 0 {
				continue
			}

			var in UpdateStockInput
			if lot.Quantity >= remaining {
				newQty := lot.Quantity - remaining
				active := newQty != 0
				in = UpdateStockInput{
					ID:              lot.ID,
					UserID:          userID,
					OrderID:         orderID,
					Quantity:        &newQty,
					IsActive:        &active,
					TransactionType: entity.TransactionSale,
				}
				remaining = 0
			} else {
				remaining -= lot.Quantity
				zero := 0
				inactive := false
				in = UpdateStockInput{
					ID:              lot.ID,
					UserID:          userID,
					OrderID:         orderID,
					Quantity:        &zero,
					IsActive:        &inactive,
					IsWarning:       &inactive,
					TransactionType: entity.TransactionSale,
				}
			}
			if _, err := uc.applyUpdate(lots, txs, mods, in); err != nil {
				return err
			}
		}

		if remaining > 0 {
			uc.log.Warn().
				Int64("product_id", productID).
				Int("faltante", remaining).
				Msg("lotes agotados antes de cubrir la venta")
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", productID).Msg("descuento de stock fallido")
	}
}

// RefreshProductWarnings recalcula vencimiento y aviso de todos los lotes de
// un producto. Idempotente: se invoca en cada lectura de catálogo y en el
// barrido diario. Primero se resuelven los vencidos (quedan inactivos y sin
// aviso) y recién después se calcula la ventana de aviso, para que un lote
// vencido jamás figure "en aviso".
func (uc *UseCase) RefreshProductWarnings(ctx context.Context, productID, userID int64) {
	err := uc.txRunner.Run(ctx, func(
		lots repository.StockLotRepository,
		txs repository.StockTransactionRepository,
		mods repository.StockModificationRepository,
	) error {
		all, err := lots.ListByProductForUpdate(productID)
		if err != nil {
			return err
		}
		today := uc.now()

		for _, lot := range all {
			if lot.IsActive && stockdomain.Expired(lot.ExpirationDate, today) {
				lot.IsActive = false
				lot.IsWarning = false
			}
		}
		for _, lot := range all {
			if lot.IsActive && lot.ExpirationDate != nil && lot.ExpirationWarningDays != nil {
				lot.IsWarning = stockdomain.InWarningWindow(lot.ExpirationDate, lot.ExpirationWarningDays, today)
			}
		}

		// Persistencia por el camino único: un StatusChange solo si IsActive
		// realmente cambió respecto del estado guardado.
		for _, lot := range all {
			in := UpdateStockInput{
				ID:        lot.ID,
				UserID:    userID,
				IsActive:  &lot.IsActive,
				IsWarning: &lot.IsWarning,
			}
			if _, err := uc.applyUpdate(lots, txs, mods, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", productID).Msg("barrido de vencimientos fallido")
	}
}

// RefundStock revierte las transacciones de venta de un pedido cancelado:
// cada asiento Sale pasa a Return con magnitud absoluta y fecha actual, la
// cantidad vuelve al lote original y un lote desactivado por la venta se
// reactiva dejando asiento de estado (atribuido al usuario de la venta).
// Los asientos ya en Return se saltan por completo, de modo que una segunda
// llamada no vuelve a abonar cantidad (decisión registrada en DESIGN.md).
// Devuelve false solo si el pedido no tiene transacciones o la escritura falla.
func (uc *UseCase) RefundStock(ctx context.Context, orderID int64) bool {
	refunded := false
	err := uc.txRunner.Run(ctx, func(
		lots repository.StockLotRepository,
		txs repository.StockTransactionRepository,
		mods repository.StockModificationRepository,
	) error {
		list, err := txs.ListByOrder(orderID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return nil
		}

		for _, tr := range list {
			if tr.TransactionType == entity.TransactionReturn {
				continue
			}
			tr.TransactionType = entity.TransactionReturn
			if tr.QuantityChanged < 0 {
				tr.QuantityChanged = -tr.QuantityChanged
			}
			tr.TransactionDate = uc.now()
			if _, err := txs.Update(tr); err != nil {
				return err
			}

			lot, err := lots.GetForUpdate(tr.StockID)
			if err != nil {
				return err
			}
			if lot == nil {
				// Dato parcial tolerado: se revierte lo que se pueda.
				uc.log.Warn().Int64("stock_id", tr.StockID).Int64("order_id", orderID).Msg("lote de la transacción no existe")
				continue
			}

			lot.Quantity += tr.QuantityChanged
			if !lot.IsActive {
				lot.IsActive = true
				_, err := mods.Insert(&entity.StockModification{
					StockID:          tr.StockID,
					ProductID:        tr.ProductID,
					UserID:           tr.UserID,
					OldValue:         "false",
					NewValue:         "true",
					ModificationDate: uc.now(),
					ModificationType: entity.ModificationStatus,
				})
				if err != nil {
					return err
				}
			}
			if _, err := lots.Update(lot); err != nil {
				return err
			}
		}
		refunded = true
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("order_id", orderID).Msg("devolución de stock fallida")
		return false
	}
	return refunded
}

// ── Proyecciones de solo lectura ──────────────────────────────────────────────

// LotsByProduct devuelve los lotes de un producto (orden FIFO).
func (uc *UseCase) LotsByProduct(productID int64) []dto.StockLotDTO {
	lots, err := uc.lotRepo.ListByProduct(productID)
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", productID).Msg("listar lotes")
		return []dto.StockLotDTO{}
	}
	out := make([]dto.StockLotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.StockLotDTO{
			ID:                    l.ID,
			ProductID:             l.ProductID,
			Quantity:              l.Quantity,
			ExpirationDate:        l.ExpirationDate,
			ExpirationWarningDays: l.ExpirationWarningDays,
			IsActive:              l.IsActive,
			IsWarning:             l.IsWarning,
			AddedDate:             l.AddedDate,
		})
	}
	return out
}

// TotalQuantity devuelve las unidades activas de un producto.
func (uc *UseCase) TotalQuantity(productID int64) int {
	total, err := uc.lotRepo.TotalActiveQuantity(productID)
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", productID).Msg("total de stock")
		return 0
	}
	return total
}

// Warnings devuelve los lotes activos en aviso de vencimiento.
func (uc *UseCase) Warnings() []dto.StockWarningDTO {
	rows, err := uc.reportRepo.ListWarnings()
	if err != nil {
		uc.log.Error().Err(err).Msg("listar avisos de vencimiento")
		return []dto.StockWarningDTO{}
	}
	out := make([]dto.StockWarningDTO, 0, len(rows))
	for _, w := range rows {
		out = append(out, dto.StockWarningDTO{
			StockID:               w.StockID,
			ProductID:             w.ProductID,
			ProductName:           w.ProductName,
			Quantity:              w.Quantity,
			ExpirationDate:        w.ExpirationDate,
			ExpirationWarningDays: w.ExpirationWarningDays,
		})
	}
	return out
}

// TransactionsByProductName lista asientos de cantidad por nombre de producto
// y rango de fechas. Nombre vacío: se registra y se devuelve vacío.
func (uc *UseCase) TransactionsByProductName(productName string, from, to *time.Time) []dto.StockTransactionDTO {
	if productName == "" {
		uc.log.Warn().Msg("nombre de producto vacío al consultar transacciones")
		return []dto.StockTransactionDTO{}
	}
	rows, err := uc.txRepo.ListByProductName(productName, from, to)
	if err != nil {
		uc.log.Error().Err(err).Str("product", productName).Msg("listar transacciones")
		return []dto.StockTransactionDTO{}
	}
	out := make([]dto.StockTransactionDTO, 0, len(rows))
	for _, t := range rows {
		out = append(out, dto.StockTransactionDTO{
			ID:              t.ID,
			StockID:         t.StockID,
			ProductID:       t.ProductID,
			OrderID:         t.OrderID,
			UserID:          t.UserID,
			QuantityChanged: t.QuantityChanged,
			TransactionDate: t.TransactionDate,
			TransactionType: t.TransactionType,
		})
	}
	return out
}

// ModificationsByProductName lista asientos de cambio de campo por nombre de
// producto y rango de fechas.
func (uc *UseCase) ModificationsByProductName(productName string, from, to *time.Time) []dto.StockModificationDTO {
	if productName == "" {
		uc.log.Warn().Msg("nombre de producto vacío al consultar modificaciones")
		return []dto.StockModificationDTO{}
	}
	rows, err := uc.modRepo.ListByProductName(productName, from, to)
	if err != nil {
		uc.log.Error().Err(err).Str("product", productName).Msg("listar modificaciones")
		return []dto.StockModificationDTO{}
	}
	out := make([]dto.StockModificationDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.StockModificationDTO{
			ID:               m.ID,
			StockID:          m.StockID,
			ProductID:        m.ProductID,
			UserID:           m.UserID,
			OldValue:         m.OldValue,
			NewValue:         m.NewValue,
			ModificationDate: m.ModificationDate,
			ModificationType: m.ModificationType,
		})
	}
	return out
}

// Summaries devuelve el agregado de movimientos por producto.
func (uc *UseCase) Summaries(productName string, from, to *time.Time) []dto.StockSummaryDTO {
	if productName == "" {
		uc.log.Warn().Msg("nombre de producto vacío al consultar resumen")
		return []dto.StockSummaryDTO{}
	}
	rows, err := uc.reportRepo.Summaries(productName, from, to)
	if err != nil {
		uc.log.Error().Err(err).Str("product", productName).Msg("resumen de stock")
		return []dto.StockSummaryDTO{}
	}
	out := make([]dto.StockSummaryDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.StockSummaryDTO{
			ProductID:          s.ProductID,
			TotalQuantity:      s.TotalQuantity,
			TotalAdded:         s.TotalAdded,
			TotalSold:          s.TotalSold,
			TotalModifications: s.TotalModifications,
		})
	}
	return out
}

// ActiveProductIDs expone los productos con lotes activos (para el barrido diario).
func (uc *UseCase) ActiveProductIDs() ([]int64, error) {
	return uc.lotRepo.ListActiveProductIDs()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func formatDate(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format("2006-01-02")
}

func formatInt(n *int) string {
	if n == nil {
		return "null"
	}
	return strconv.Itoa(*n)
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
