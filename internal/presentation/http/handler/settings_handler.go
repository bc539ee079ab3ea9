package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
	"github.com/gsolanocr/comercio-api/internal/snapshot"
)

// SettingsHandler handles portal settings, chatbot config and the saved cart
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the portal settings
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, "Settings retrieved", h.settingsService.GetSettings())
}

// UpdateSettings replaces the portal settings
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req snapshot.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated", settings)
}

// GetChatbot returns the autoresponder configuration
// GET /api/v1/settings/chatbot
func (h *SettingsHandler) GetChatbot(c *gin.Context) {
	response.OK(c, "Chatbot configuration retrieved", h.settingsService.GetChatbot())
}

// UpdateChatbot replaces the autoresponder configuration
// PUT /api/v1/settings/chatbot
func (h *SettingsHandler) UpdateChatbot(c *gin.Context) {
	var req snapshot.ChatbotConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.settingsService.UpdateChatbot(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Chatbot configuration updated", cfg)
}

// GetCart returns the saved POS cart
// GET /api/v1/settings/cart
func (h *SettingsHandler) GetCart(c *gin.Context) {
	response.OK(c, "Cart retrieved", h.settingsService.GetCart())
}

// SaveCart replaces the saved POS cart
// PUT /api/v1/settings/cart
func (h *SettingsHandler) SaveCart(c *gin.Context) {
	var req struct {
		Items []snapshot.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.SaveCart(req.Items); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart saved", nil)
}
