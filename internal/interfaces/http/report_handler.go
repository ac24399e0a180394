package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/dto"
)

// ReportHandler maneja las peticiones HTTP de reportes.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen de ventas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	in := dto.ReportRangeRequest{From: c.Query("from"), To: c.Query("to")}
	out, err := h.uc.SalesSummary(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductPerformance godoc
// @Summary      Productos más vendidos del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to     query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Máximo de productos"  default(20)
// @Success      200    {object}  dto.ProductPerformanceResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/products [get]
func (h *ReportHandler) ProductPerformance(c *fiber.Ctx) error {
	in := dto.ReportRangeRequest{From: c.Query("from"), To: c.Query("to")}
	out, err := h.uc.ProductPerformance(c.Context(), in, c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Valorización actual del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeliveryReport godoc
// @Summary      Entregas por estado en el período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200   {object}  dto.DeliveryReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/deliveries [get]
func (h *ReportHandler) DeliveryReport(c *fiber.Ctx) error {
	in := dto.ReportRangeRequest{From: c.Query("from"), To: c.Query("to")}
	out, err := h.uc.DeliveryReport(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
