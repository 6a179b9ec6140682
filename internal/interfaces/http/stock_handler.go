package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pasteleria-pos/internal/application/dto"
	"github.com/tu-usuario/pasteleria-pos/internal/application/stock"
	"github.com/tu-usuario/pasteleria-pos/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del motor de stock (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de lote de stock
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "Datos del lote"
// @Success      201   {object}  map[string]int64
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y quantity positivos son requeridos"})
	}
	id := h.uc.CreateStock(c.Context(), GetUserID(c), in)
	if id == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo crear el lote"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Update godoc
// @Summary      Editar lote de stock
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del lote"
// @Param        body  body  dto.EditStockRequest  true  "Campos a cambiar"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.EditStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity no puede ser negativo"})
	}
	ok := h.uc.UpdateStock(c.Context(), stock.UpdateStockInput{
		ID:                    int64(id),
		UserID:                GetUserID(c),
		Quantity:              in.Quantity,
		ExpirationDate:        in.ExpirationDate,
		ExpirationWarningDays: in.ExpirationWarningDays,
		IsActive:              in.IsActive,
		TransactionType:       entity.TransactionAdjustment,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByProduct lista los lotes de un producto en orden FIFO.
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	return c.JSON(h.uc.LotsByProduct(int64(id)))
}

// Refresh dispara el barrido de vencimientos de un producto.
func (h *StockHandler) Refresh(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	h.uc.RefreshProductWarnings(c.Context(), int64(id), GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Warnings godoc
// @Summary      Panel de avisos de vencimiento
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockWarningDTO
// @Router       /api/stocks/warnings [get]
func (h *StockHandler) Warnings(c *fiber.Ctx) error {
	return c.JSON(h.uc.Warnings())
}

// Transactions lista el libro de transacciones por nombre de producto.
func (h *StockHandler) Transactions(c *fiber.Ctx) error {
	product := c.Query("product")
	if product == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query param product requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas: usar YYYY-MM-DD"})
	}
	return c.JSON(h.uc.TransactionsByProductName(product, from, to))
}

// Modifications lista el libro de modificaciones por nombre de producto.
func (h *StockHandler) Modifications(c *fiber.Ctx) error {
	product := c.Query("product")
	if product == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query param product requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas: usar YYYY-MM-DD"})
	}
	return c.JSON(h.uc.ModificationsByProductName(product, from, to))
}

// Summary agrega los movimientos por producto.
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	product := c.Query("product")
	if product == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query param product requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas: usar YYYY-MM-DD"})
	}
	return c.JSON(h.uc.Summaries(product, from, to))
}

// parseDateRange lee from/to en formato YYYY-MM-DD; to se extiende al final
// del día para que el rango sea inclusivo.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
