package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
	"github.com/jhoicas/manufactura-api/internal/domain"
)

// BOMHandler maneja las entradas de BOM (protegido).
type BOMHandler struct {
	uc *usecase.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entrada de BOM
// @Description  Define cuánto componente se consume por unidad producida de la
//               variante padre. Rechaza auto-referencias y ciclos directos.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMEntryRequest  true  "parent_variant_id, component_variant_id, quantity_required"
// @Success      201   {object}  dto.BOMEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bom [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreateEntry(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida o auto-referencia"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BOM_CYCLE", Message: "la entrada formaría un ciclo"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la entrada ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListByParent godoc
// @Summary      Listar BOM de una variante padre
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        parent_variant_id  path  string  true  "ID de la variante padre"
// @Success      200  {array}  dto.BOMEntryResponse
// @Router       /api/bom/{parent_variant_id} [get]
func (h *BOMHandler) ListByParent(c *fiber.Ctx) error {
	entries, err := h.uc.ListByParent(c.Context(), c.Params("parent_variant_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(entries)
}

// Delete godoc
// @Summary      Eliminar entrada de BOM
// @Tags         bom
// @Security     Bearer
// @Param        id  path  string  true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/{id} [delete]
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteEntry(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
