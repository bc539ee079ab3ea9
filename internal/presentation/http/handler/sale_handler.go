package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// SaleHandler handles sale ledger endpoints
type SaleHandler struct {
	saleService   *service.SaleService
	intakeService *service.IntakeService
	businessPhone string
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, intakeService *service.IntakeService, businessPhone string) *SaleHandler {
	return &SaleHandler{
		saleService:   saleService,
		intakeService: intakeService,
		businessPhone: businessPhone,
	}
}

// ListSales lists sales
// GET /api/v1/sales
func (h *SaleHandler) ListSales(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := &repository.SaleFilterParams{
		Pagination:  &params,
		Source:      c.Query("source"),
		ClientPhone: c.Query("client_phone"),
	}

	if status := c.Query("status"); status != "" {
		parsed, err := enum.ParseSaleStatus(status)
		if err != nil {
			response.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &parsed
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = &t
	}

	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		end := t.Add(24*time.Hour - time.Second)
		filter.EndDate = &end
	}

	result, err := h.saleService.ListSales(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved", result)
}

// GetSale retrieves a sale with its items
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// CompleteSale marks a pending sale as completed
// POST /api/v1/sales/:id/complete
func (h *SaleHandler) CompleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.CompleteSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale completed", sale)
}

// ShareSale returns the canonical order message and wa.me link for a sale
// GET /api/v1/sales/:id/share
func (h *SaleHandler) ShareSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	message, link, err := h.intakeService.ShareMessage(c.Request.Context(), id, h.businessPhone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Share link generated", gin.H{
		"message": message,
		"link":    link,
	})
}

// CreatePOSSale records a register checkout
// POST /api/v1/sales/pos
func (h *SaleHandler) CreatePOSSale(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		ClientName  string `json:"client_name"`
		ClientPhone string `json:"client_phone"`
		TaxRate     int    `json:"tax_rate" binding:"gte=0,lte=100"`
		Items       []struct {
			ProductID string `json:"product_id" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,gte=1"`
		} `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreatePOSSaleInput{
		UserID:      *userID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		TaxRate:     req.TaxRate,
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		input.Items = append(input.Items, service.POSItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	sale, err := h.saleService.CreatePOSSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded", sale)
}
