package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/reports"
)

// ReportHandler maneja la matriz de stock y el reporte de reposición (protegido).
type ReportHandler struct {
	uc  *reports.StockMatrixUseCase
	pdf reports.MatrixPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.StockMatrixUseCase, pdf reports.MatrixPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// StockMatrix godoc
// @Summary      Matriz de stock por producto y variación
// @Description  Vista derivada calculada desde los saldos actuales. Solo hay
//               celda donde existe una variante con esa variación.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        variation  query  string  false  "nombre de la variación (default color)"
// @Success      200  {object}  dto.StockMatrixDTO
// @Router       /api/reports/stock-matrix [get]
func (h *ReportHandler) StockMatrix(c *fiber.Ctx) error {
	matrix, err := h.uc.Matrix(c.Context(), c.Query("variation"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(matrix)
}

// StockMatrixPDF godoc
// @Summary      Matriz de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        variation  query  string  false  "nombre de la variación (default color)"
// @Success      200  {file}  binary
// @Router       /api/reports/stock-matrix/pdf [get]
func (h *ReportHandler) StockMatrixPDF(c *fiber.Ctx) error {
	matrix, err := h.uc.Matrix(c.Context(), c.Query("variation"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	bytes, err := h.pdf.GenerateMatrixPDF(c.Context(), matrix)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="matriz-stock.pdf"`)
	return c.Send(bytes)
}

// LowStock godoc
// @Summary      Variantes en o bajo su stock mínimo
// @Description  Ordenadas por mayor déficit primero. Solo considera variantes
//               con stock mínimo configurado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}
