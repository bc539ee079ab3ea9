package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/config"
	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	domainRepo "github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/handler"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/middleware"
	"github.com/gsolanocr/comercio-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Client       *handler.ClientHandler
	Sale         *handler.SaleHandler
	Intake       *handler.IntakeHandler
	Expense      *handler.ExpenseHandler
	Strategy     *handler.StrategyHandler
	Notification *handler.NotificationHandler
	Settings     *handler.SettingsHandler
	Dashboard    *handler.DashboardHandler
	Report       *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleRedirect)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerIntakeRoutes(protected, h, deps)
	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerClientRoutes(protected, h)
	registerSaleRoutes(protected, h, deps)
	registerExpenseRoutes(protected, h)
	registerStrategyRoutes(protected, h)
	registerNotificationRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerIntakeRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders/whatsapp")
	{
		orders.POST("/preview", h.Intake.Preview)
		// Commit uses idempotency middleware to prevent duplicate sales
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Intake.Commit)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.ListProducts)
		products.POST("", h.Product.CreateProduct)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.GetProduct)
		products.PUT("/:id", h.Product.UpdateProduct)
		products.DELETE("/:id", h.Product.DeleteProduct)
		products.POST("/:id/stock", h.Product.AdjustStock)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", h.Product.CreateCategory)
		categories.PUT("/:id", h.Product.UpdateCategory)
		categories.DELETE("/:id", h.Product.DeleteCategory)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.ListClients)
		clients.POST("", h.Client.CreateClient)
		clients.GET("/top", h.Client.TopClients)
		clients.GET("/:id", h.Client.GetClient)
		clients.PUT("/:id", h.Client.UpdateClient)
		clients.DELETE("/:id", h.Client.DeleteClient)
		clients.GET("/:id/sales", h.Client.GetClientSales)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.ListSales)
		// POS checkout replays safely when the client retries with a key,
		// but the key stays optional for clients that never send one
		sales.POST("/pos", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.CreatePOSSale)
		sales.GET("/:id", h.Sale.GetSale)
		sales.POST("/:id/complete", h.Sale.CompleteSale)
		sales.GET("/:id/share", h.Sale.ShareSale)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.ListExpenses)
		expenses.POST("", h.Expense.CreateExpense)
		expenses.GET("/cash-flow", h.Expense.CashFlow)
		expenses.GET("/:id", h.Expense.GetExpense)
		expenses.PUT("/:id", h.Expense.UpdateExpense)
		expenses.DELETE("/:id", h.Expense.DeleteExpense)
	}
}

func registerStrategyRoutes(protected *gin.RouterGroup, h *Handlers) {
	strategies := protected.Group("/strategies")
	{
		strategies.GET("", h.Strategy.ListStrategies)
		strategies.POST("", h.Strategy.GenerateStrategy)
		strategies.GET("/:id", h.Strategy.GetStrategy)
		strategies.PATCH("/:id/status", h.Strategy.UpdateStrategyStatus)
		strategies.DELETE("/:id", h.Strategy.DeleteStrategy)
	}
}

func registerNotificationRoutes(protected *gin.RouterGroup, h *Handlers) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
		notifications.DELETE("", h.Notification.Clear)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", h.Settings.UpdateSettings)
		settings.GET("/chatbot", h.Settings.GetChatbot)
		settings.PUT("/chatbot", h.Settings.UpdateChatbot)
		settings.GET("/cart", h.Settings.GetCart)
		settings.PUT("/cart", h.Settings.SaveCart)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		reports.GET("/sales", h.Report.ExportSales)
		reports.GET("/products", h.Report.ExportProducts)
		reports.GET("/clients", h.Report.ExportClients)
		reports.GET("/cash-flow", h.Report.ExportCashFlow)
		reports.POST("/products/import", h.Report.ImportProducts)
	}
}
