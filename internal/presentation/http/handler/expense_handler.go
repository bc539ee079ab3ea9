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

// ExpenseHandler handles expense and cash-flow endpoints
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// periodFromQuery resolves the from/to query params, defaulting to the
// current month.
func periodFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return from, to, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return from, to, false
		}
		to = t.Add(24*time.Hour - time.Second)
	}
	return from, to, true
}

// CreateExpense records an expense
// POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Concept   string  `json:"concept" binding:"required"`
		Category  string  `json:"category"`
		Amount    int64   `json:"amount" binding:"required,gt=0"`
		Date      string  `json:"date"`
		Recurring bool    `json:"recurring"`
		Notes     *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category := enum.ExpenseCategoryOtros
	if req.Category != "" {
		parsed, err := enum.ParseExpenseCategory(req.Category)
		if err != nil {
			response.BadRequest(c, "Invalid category")
			return
		}
		category = parsed
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		UserID:    *userID,
		Concept:   req.Concept,
		Category:  category,
		Amount:    req.Amount,
		Date:      date,
		Recurring: req.Recurring,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded", expense)
}

// ListExpenses lists expenses
// GET /api/v1/expenses
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := &repository.ExpenseFilterParams{Pagination: &params}

	if category := c.Query("category"); category != "" {
		parsed, err := enum.ParseExpenseCategory(category)
		if err != nil {
			response.BadRequest(c, "Invalid category")
			return
		}
		filter.Category = &parsed
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

	result, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved", result)
}

// GetExpense retrieves an expense
// GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved", expense)
}

// UpdateExpense updates an expense
// PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req struct {
		Concept   *string `json:"concept"`
		Category  *string `json:"category"`
		Amount    *int64  `json:"amount"`
		Date      *string `json:"date"`
		Recurring *bool   `json:"recurring"`
		Notes     *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateExpenseInput{
		ID:        id,
		Concept:   req.Concept,
		Amount:    req.Amount,
		Recurring: req.Recurring,
		Notes:     req.Notes,
	}

	if req.Category != nil {
		parsed, err := enum.ParseExpenseCategory(*req.Category)
		if err != nil {
			response.BadRequest(c, "Invalid category")
			return
		}
		input.Category = &parsed
	}

	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = &parsed
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated", expense)
}

// DeleteExpense deletes an expense
// DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted", nil)
}

// CashFlow summarizes income against expenses for a period
// GET /api/v1/expenses/cash-flow
func (h *ExpenseHandler) CashFlow(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.expenseService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash flow retrieved", summary)
}
