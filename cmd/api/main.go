package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/config"
	"github.com/gsolanocr/comercio-api/internal/infrastructure/database"
	"github.com/gsolanocr/comercio-api/internal/infrastructure/repository"
	"github.com/gsolanocr/comercio-api/internal/notify"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/handler"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/routes"
	"github.com/gsolanocr/comercio-api/internal/snapshot"
	"github.com/gsolanocr/comercio-api/pkg/email"
	"github.com/gsolanocr/comercio-api/pkg/oauth"
	"github.com/gsolanocr/comercio-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Open the portal state snapshot (settings, chatbot, cart, notifications)
	store := snapshot.Open(cfg.Snapshot.Path)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	clientRepo := repository.NewClientRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewService(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google sign-in service
	googleService := oauth.NewGoogleService(oauth.GoogleConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		SuccessURL:   cfg.OAuth.FrontendSuccessURL,
		ErrorURL:     cfg.OAuth.FrontendErrorURL,
	})

	// Notification center with the owner email alert sink
	center := notify.NewCenter(store, notify.NewEmailSink(emailService, cfg.Email.AlertsTo))

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleService)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	clientService := service.NewClientService(clientRepo, saleRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, clientRepo, center)
	intakeService := service.NewIntakeService(productRepo, clientRepo, saleRepo, center)
	expenseService := service.NewExpenseService(expenseRepo, saleRepo)
	strategyService := service.NewStrategyService(strategyRepo)
	dashboardService := service.NewDashboardService(saleRepo, productRepo, clientRepo, expenseRepo)
	settingsService := service.NewSettingsService(store)
	reportService := service.NewReportService(saleRepo, productRepo, clientRepo, expenseRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Product:      handler.NewProductHandler(productService, categoryService),
		Client:       handler.NewClientHandler(clientService),
		Sale:         handler.NewSaleHandler(saleService, intakeService, cfg.WhatsApp.BusinessPhone),
		Intake:       handler.NewIntakeHandler(intakeService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Strategy:     handler.NewStrategyHandler(strategyService),
		Notification: handler.NewNotificationHandler(center),
		Settings:     handler.NewSettingsHandler(settingsService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Report:       handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
