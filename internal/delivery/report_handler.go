package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/domain"
	"pos_service/internal/report"
	"pos_service/internal/usecase"
)

type ReportHandler struct {
	reports  *usecase.ReportUseCase
	orders   *usecase.OrderUseCase
	products *usecase.ProductUseCase
	log      *logrus.Logger
}

func NewReportHandler(reports *usecase.ReportUseCase, orders *usecase.OrderUseCase, products *usecase.ProductUseCase, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, orders: orders, products: products, log: logger}
}

type GenerateReportRequest struct {
	Type      domain.ReportType `json:"type" binding:"required"`
	DateRange domain.DateRange  `json:"dateRange"`
}

func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	reports := router.Group("/reports")
	{
		reports.GET("", h.ListReports)
		reports.POST("", h.GenerateReport)
		reports.GET("/chart", h.Chart)
		reports.GET("/:id", h.GetReportByID)
		reports.DELETE("/:id", h.DeleteReport)
	}
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	reports := h.reports.Reports()
	if typ := c.Query("type"); typ != "" {
		if !domain.IsValidReportType(domain.ReportType(typ)) {
			ErrorResponse(c, http.StatusBadRequest, "Invalid report type: "+typ)
			return
		}
		reports = h.reports.GetReportsByType(domain.ReportType(typ))
	}

	snap := h.reports.Snapshot()
	SuccessResponse(c, http.StatusOK, "Reports retrieved successfully", gin.H{
		"reports":   reports,
		"isLoading": snap.IsLoading,
		"error":     snap.Error,
	})
}

// GenerateReport aggregates the current orders and products into a new report.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for generate report: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rep, err := h.reports.GenerateReport(ctx, req.Type, req.DateRange, h.orders.Orders(), h.products.Products())
	if err != nil {
		h.log.Warnf("Failed to generate %s report: %v", req.Type, err)
		failWith(c, "Failed to generate report", err)
		return
	}

	h.log.Infof("Report generated successfully: ID %s, Orders %d", rep.ID, rep.TotalOrders)
	SuccessResponse(c, http.StatusCreated, "Report generated successfully", rep)
}

func (h *ReportHandler) GetReportByID(c *gin.Context) {
	id := c.Param("id")
	rep, ok := h.reports.GetReportByID(id)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Report not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "Report retrieved successfully", rep)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.reports.DeleteReport(ctx, id); err != nil {
		h.log.Warnf("Failed to delete report %s: %v", id, err)
		failWith(c, "Failed to delete report", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Report deleted successfully", nil)
}

// Chart serves chart points and their summary for ?report_id= (latest report
// when omitted), narrowed to ?category= (default "All").
func (h *ReportHandler) Chart(c *gin.Context) {
	reportID := c.Query("report_id")
	category := c.DefaultQuery("category", report.AllCategories)

	points, err := h.reports.GetChartData(reportID)
	if err != nil {
		failWith(c, "Failed to build chart", err)
		return
	}

	summary, err := h.reports.GetChartSummary(reportID, category)
	if err != nil {
		failWith(c, "Failed to build chart", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Chart data retrieved successfully", gin.H{
		"points":  report.FilterByCategory(points, category),
		"summary": summary,
	})
}
