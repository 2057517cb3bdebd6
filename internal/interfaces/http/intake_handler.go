package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/orders"
	"github.com/jhoicas/manufactura-api/internal/domain"
)

// IntakeHandler recibe pedidos del canal e-commerce. La autenticidad del evento
// la verifica el canal; aquí solo se garantiza idempotencia por external_ref.
type IntakeHandler struct {
	uc *orders.IntakeUseCase
}

// NewIntakeHandler construye el handler.
func NewIntakeHandler(uc *orders.IntakeUseCase) *IntakeHandler {
	return &IntakeHandler{uc: uc}
}

// ReceiveOrder godoc
// @Summary      Recibir pedido externo
// @Description  Crea el pedido interno (source external), resuelve los SKUs a
//               variantes y lo despacha de inmediato. La redelivery del mismo
//               external_ref responde 409 sin volver a descontar stock.
// @Tags         intake
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExternalOrderRequest  true  "external_ref, items: sku, quantity"
// @Success      201   {object}  dto.FulfillmentResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/intake/orders [post]
func (h *IntakeHandler) ReceiveOrder(c *fiber.Ctx) error {
	var in dto.ExternalOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.ProcessExternalOrder(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_EVENT", Message: "el evento ya fue procesado"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SKU_NOT_FOUND", Message: err.Error()})
		}
		return engineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
