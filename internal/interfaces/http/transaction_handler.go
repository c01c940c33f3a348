package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain"
)

// TransactionHandler maneja el registro y consulta de transacciones de
// inventario (protegido). El registro pasa por el motor de transacciones;
// las consultas son de solo lectura.
type TransactionHandler struct {
	record *inventory.RecordTransactionUseCase
	query  *usecase.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(record *inventory.RecordTransactionUseCase, query *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{record: record, query: query}
}

// Record godoc
// @Summary      Registrar transacción de inventario
// @Description  add/remove usan quantity como magnitud; update la interpreta como nueva cantidad absoluta.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "product_id, action, quantity, notes"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.record.RecordTransaction(c.UserContext(), inventory.TransactionInputDTO{
		ProductID: in.ProductID,
		UserID:    GetUserID(c),
		Action:    in.Action,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, action y quantity (positiva) son requeridos"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la operación"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Una acción update sin cambio real no genera fila de auditoría.
	if result.Transaction == nil {
		return c.JSON(dto.MessageResponse{Message: "sin cambio de cantidad; no se registró transacción"})
	}
	// Releer con producto y usuario anidados para la respuesta.
	out, err := h.query.GetByID(result.Transaction.ID)
	if err != nil || out == nil {
		return c.Status(fiber.StatusCreated).JSON(usecase.ToTransactionResponse(result.Transaction))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.query.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar transacciones (más recientes primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.query.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Historial de transacciones de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/product/{product_id} [get]
func (h *TransactionHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	out, err := h.query.ListByProduct(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
