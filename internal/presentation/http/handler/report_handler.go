package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/response"
)

// ReportHandler handles day-report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Day handles building the consolidated report for one date
func (h *ReportHandler) Day(c *gin.Context) {
	report, err := h.reportService.DayReport(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Report generated successfully", report)
}

// Export handles exporting the day report as a spreadsheet download
func (h *ReportHandler) Export(c *gin.Context) {
	path, _, err := h.reportService.ExportDayReport(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
