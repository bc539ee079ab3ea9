package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// StrategyHandler handles marketing strategy endpoints
type StrategyHandler struct {
	strategyService *service.StrategyService
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(strategyService *service.StrategyService) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService}
}

// GenerateStrategy runs the wizard and stores the generated plan
// POST /api/v1/strategies
func (h *StrategyHandler) GenerateStrategy(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Name           string `json:"name"`
		BusinessGoal   string `json:"business_goal" binding:"required"`
		TargetAudience string `json:"target_audience"`
		MonthlyBudget  int64  `json:"monthly_budget" binding:"gte=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	strategy, err := h.strategyService.GenerateStrategy(c.Request.Context(), &service.GenerateStrategyInput{
		UserID:         *userID,
		Name:           req.Name,
		BusinessGoal:   req.BusinessGoal,
		TargetAudience: req.TargetAudience,
		MonthlyBudget:  req.MonthlyBudget,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Strategy generated", strategy)
}

// GetStrategy retrieves a strategy
// GET /api/v1/strategies/:id
func (h *StrategyHandler) GetStrategy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid strategy ID")
		return
	}

	strategy, err := h.strategyService.GetStrategy(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Strategy retrieved", strategy)
}

// ListStrategies lists strategies
// GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.strategyService.ListStrategies(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Strategies retrieved", result)
}

// UpdateStrategyStatus moves a strategy through its lifecycle
// PATCH /api/v1/strategies/:id/status
func (h *StrategyHandler) UpdateStrategyStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid strategy ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status, err := enum.ParseStrategyStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid status")
		return
	}

	strategy, err := h.strategyService.UpdateStrategyStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Strategy updated", strategy)
}

// DeleteStrategy deletes a strategy
// DELETE /api/v1/strategies/:id
func (h *StrategyHandler) DeleteStrategy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid strategy ID")
		return
	}

	if err := h.strategyService.DeleteStrategy(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Strategy deleted", nil)
}
