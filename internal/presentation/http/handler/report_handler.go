package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves spreadsheet exports and the catalog import
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func sendSpreadsheet(c *gin.Context, name string, buf *bytes.Buffer) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportSales downloads the period's sales as xlsx
// GET /api/v1/reports/sales
func (h *ReportHandler) ExportSales(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	buf, err := h.reportService.ExportSales(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendSpreadsheet(c, "ventas", buf)
}

// ExportProducts downloads the catalog as xlsx
// GET /api/v1/reports/products
func (h *ReportHandler) ExportProducts(c *gin.Context) {
	buf, err := h.reportService.ExportProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	sendSpreadsheet(c, "productos", buf)
}

// ExportClients downloads the client book as xlsx
// GET /api/v1/reports/clients
func (h *ReportHandler) ExportClients(c *gin.Context) {
	buf, err := h.reportService.ExportClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	sendSpreadsheet(c, "clientes", buf)
}

// ExportCashFlow downloads the period's income and expenses as xlsx
// GET /api/v1/reports/cash-flow
func (h *ReportHandler) ExportCashFlow(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	buf, err := h.reportService.ExportCashFlow(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendSpreadsheet(c, "flujo-de-caja", buf)
}

// ImportProducts upserts the catalog from an uploaded spreadsheet
// POST /api/v1/reports/products/import
func (h *ReportHandler) ImportProducts(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload, expected multipart field 'file'")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.reportService.ImportProducts(c.Request.Context(), *userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products imported", result)
}
