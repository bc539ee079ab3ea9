package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
)

// IntakeHandler handles the WhatsApp order inbox endpoints
type IntakeHandler struct {
	intakeService *service.IntakeService
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

// Preview parses pasted order text without committing anything
// POST /api/v1/orders/whatsapp/preview
func (h *IntakeHandler) Preview(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	preview, err := h.intakeService.Preview(c.Request.Context(), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order parsed", preview)
}

// Commit parses pasted order text and records the sale
// POST /api/v1/orders/whatsapp
func (h *IntakeHandler) Commit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, warnings, err := h.intakeService.CommitText(c.Request.Context(), &service.CommitTextInput{
		UserID: *userID,
		Text:   req.Text,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order committed", gin.H{
		"sale":     sale,
		"warnings": warnings,
	})
}
