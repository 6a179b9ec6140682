package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pasteleria-pos/internal/application/dto"
	"github.com/tu-usuario/pasteleria-pos/internal/application/ports"
	"github.com/tu-usuario/pasteleria-pos/internal/application/stock"
	"github.com/tu-usuario/pasteleria-pos/internal/domain"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/repository"
	"github.com/tu-usuario/pasteleria-pos/pkg/logger"
)

// OrderUseCase casos de uso de caja: crear pedidos, cancelarlos con
// reposición de stock y emitir el recibo.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	stockUC     *stock.UseCase
	receipts    ports.ReceiptGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	stockUC *stock.UseCase,
	receipts ports.ReceiptGenerator,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		stockUC:     stockUC,
		receipts:    receipts,
		log:         log,
		now:         time.Now,
	}
}

// CreateOrder registra una venta completa: congela precios con el descuento
// vigente, verifica disponibilidad, persiste pedido y líneas, descuenta stock
// FIFO por línea y registra el cobro.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID int64, in dto.CreateOrderRequest) (*dto.OrderDTO, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != entity.PaymentMethodCash && in.PaymentMethod != entity.PaymentMethodCard {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod == entity.PaymentMethodCard && (in.CardNumber == nil || len(*in.CardNumber) < 4) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	total := decimal.Zero
	items := make([]*entity.OrderItem, 0, len(in.Items))
	names := make(map[int64]string, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsAvailable {
			return nil, domain.ErrNotFound
		}
		// El barrido corre antes de mirar el total para no vender vencidos.
		uc.stockUC.RefreshProductWarnings(ctx, p.ID, userID)
		if uc.stockUC.TotalQuantity(p.ID) < line.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		unit := p.FinalPrice()
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, &entity.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unit,
		})
		names[p.ID] = p.Name
	}

	order := &entity.Order{
		UserID:     userID,
		OrderDate:  now,
		TotalPrice: total.Round(2),
		Status:     entity.OrderCompleted,
	}
	orderID, err := uc.orderRepo.Create(order, items)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	for _, it := range items {
		uc.stockUC.ReduceStock(ctx, it.ProductID, it.Quantity, userID, &orderID)
	}

	payment := &entity.Payment{
		UserID:        userID,
		OrderID:       orderID,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: entity.PaymentCompleted,
		AmountPaid:    order.TotalPrice,
		CardNumber:    maskCard(in.CardNumber),
		Reference:     uuid.NewString(),
		PaymentDate:   now,
	}
	if _, err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("order_id", orderID).
		Int64("user_id", userID).
		Str("total", order.TotalPrice.String()).
		Msg("pedido registrado")
	return uc.toOrderDTO(order, items, names), nil
}

// CancelOrder anula un pedido completado: repone el stock vendido, marca el
// pedido Cancelled y el cobro Refunded. Un pedido ya anulado no es anulable.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID int64) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderCompleted {
		return domain.ErrOrderNotCancelable
	}

	if !uc.stockUC.RefundStock(ctx, orderID) {
		uc.log.Warn().Int64("order_id", orderID).Msg("pedido sin movimientos de stock para reponer")
	}
	if _, err := uc.orderRepo.UpdateStatus(orderID, entity.OrderCancelled); err != nil {
		return err
	}
	if payment, err := uc.paymentRepo.GetByOrder(orderID); err == nil && payment != nil {
		if _, err := uc.paymentRepo.UpdateStatus(payment.ID, entity.PaymentRefunded); err != nil {
			uc.log.Warn().Err(err).Int64("order_id", orderID).Msg("no se pudo marcar el cobro como devuelto")
		}
	}
	uc.log.Info().Int64("order_id", orderID).Msg("pedido anulado y stock repuesto")
	return nil
}

// GetOrder devuelve un pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID int64) (*dto.OrderDTO, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(orderID)
	if err != nil {
		return nil, err
	}
	return uc.toOrderDTO(order, items, uc.resolveNames(items)), nil
}

// ListOrders listado paginado de pedidos, opcionalmente acotado por fechas.
func (uc *OrderUseCase) ListOrders(ctx context.Context, from, to *time.Time, limit, offset int) ([]dto.OrderDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	orders, err := uc.orderRepo.ListByDateRange(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, *uc.toOrderDTO(o, nil, nil))
	}
	return out, nil
}

// GetPayment devuelve el cobro de un pedido.
func (uc *OrderUseCase) GetPayment(ctx context.Context, orderID int64) (*dto.PaymentDTO, error) {
	payment, err := uc.paymentRepo.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PaymentDTO{
		ID:            payment.ID,
		OrderID:       payment.OrderID,
		PaymentMethod: payment.PaymentMethod,
		PaymentStatus: payment.PaymentStatus,
		AmountPaid:    payment.AmountPaid,
		Reference:     payment.Reference,
		PaymentDate:   payment.PaymentDate,
	}, nil
}

// Receipt genera el recibo PDF de un pedido.
func (uc *OrderUseCase) Receipt(ctx context.Context, orderID int64) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(orderID)
	if err != nil {
		return nil, err
	}
	payment, err := uc.paymentRepo.GetByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	cashier := ""
	if user, err := uc.userRepo.GetByID(order.UserID); err == nil && user != nil {
		cashier = user.FullName()
	}
	names := uc.resolveNames(items)

	data := ports.ReceiptData{
		OrderID:       order.ID,
		OrderDate:     order.OrderDate,
		CashierName:   cashier,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: payment.PaymentMethod,
		CardNumber:    payment.CardNumber,
		Reference:     payment.Reference,
	}
	for _, it := range items {
		data.Lines = append(data.Lines, ports.ReceiptLine{
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2),
		})
	}
	return uc.receipts.GenerateReceipt(data)
}

func (uc *OrderUseCase) resolveNames(items []*entity.OrderItem) map[int64]string {
	names := make(map[int64]string, len(items))
	for _, it := range items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			names[it.ProductID] = p.Name
		}
	}
	return names
}

func (uc *OrderUseCase) toOrderDTO(o *entity.Order, items []*entity.OrderItem, names map[int64]string) *dto.OrderDTO {
	out := &dto.OrderDTO{
		ID:         o.ID,
		UserID:     o.UserID,
		OrderDate:  o.OrderDate,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.OrderItemDTO{
			ProductID:   it.ProductID,
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2),
		})
	}
	return out
}

// maskCard deja visibles solo los últimos 4 dígitos.
func maskCard(number *string) *string {
	if number == nil {
		return nil
	}
	n := *number
	if len(n) <= 4 {
		return &n
	}
	masked := "**** **** **** " + n[len(n)-4:]
	return &masked
}
