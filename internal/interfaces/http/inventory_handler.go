package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
)

// InventoryHandler maneja las operaciones del motor de inventario (protegido).
type InventoryHandler struct {
	purchase   *inventory.RegisterPurchaseUseCase
	production *inventory.RegisterProductionUseCase
	adjustment *inventory.RegisterAdjustmentUseCase
	query      *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	purchase *inventory.RegisterPurchaseUseCase,
	production *inventory.RegisterProductionUseCase,
	adjustment *inventory.RegisterAdjustmentUseCase,
	query *inventory.QueryUseCase,
) *InventoryHandler {
	return &InventoryHandler{purchase: purchase, production: production, adjustment: adjustment, query: query}
}

// RegisterPurchase godoc
// @Summary      Registrar compra de materia prima
// @Description  Las líneas de la misma variante se suman en un solo movimiento
//               PURCHASE. Toda la compra aterriza en una transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "lines: product_id, variant_id, quantity"
// @Success      201   {object}  dto.OperationResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchases [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.purchase.RegisterPurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// RegisterProduction godoc
// @Summary      Registrar salida de producción
// @Description  Por cada línea genera un OUTPUT del producto terminado y, según
//               el BOM, los CONSUMPTION de sus componentes. Los consumos del
//               mismo componente entre líneas se agregan. Todo o nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductionRequest  true  "lines: product_id, variant_id (opcional si hay una sola), quantity"
// @Success      201   {object}  dto.OperationResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/production [post]
func (h *InventoryHandler) RegisterProduction(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.production.RegisterProduction(c.Context(), GetUserID(c), in)
	if err != nil {
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// RegisterAdjustment godoc
// @Summary      Registrar ajustes manuales
// @Description  Cada línea es un movimiento ADJUSTMENT independiente con su
//               motivo; no se agregan entre sí.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "lines: variant_id, direction (increase|decrease), quantity, reason"
// @Success      201   {object}  dto.OperationResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.adjustment.RegisterAdjustment(c.Context(), GetUserID(c), in)
	if err != nil {
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListMovements godoc
// @Summary      Historial de movimientos de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id  path   string  true   "ID de la variante"
// @Param        limit       query  int     false  "máximo de filas (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{variant_id} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	movements, err := h.query.ListMovements(c.Context(), c.Params("variant_id"), page)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(movements)
}

// GetBalance godoc
// @Summary      Saldo actual de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id  path  string  true  "ID de la variante"
// @Success      200  {object}  dto.BalanceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/{variant_id} [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.query.GetBalance(c.Context(), c.Params("variant_id"))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(balance)
}

// engineError mapea los errores del motor a estados HTTP.
func engineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrComponentNotFound):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPONENT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrAmbiguousVariant):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "AMBIGUOUS_VARIANT", Message: "el producto tiene varias variantes; indique variant_id"})
	case errors.Is(err, domain.ErrAlreadyFulfilled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_FULFILLED", Message: "el pedido ya fue despachado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "estado en conflicto"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
