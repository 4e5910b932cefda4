package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/taskbridge/taskbridge-api/internal/config"
	"github.com/taskbridge/taskbridge-api/internal/database"
	"github.com/taskbridge/taskbridge-api/internal/handlers"
	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
	"github.com/taskbridge/taskbridge-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogFile)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.SeedAccounts {
		if err := database.Seed(database.GetDB()); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	db := database.GetDB()

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	notificationService := services.NewNotificationService(notificationRepo)
	settingsService := services.NewSettingsService(settingRepo, auditRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, auditRepo, notificationService, settingsService)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, auditRepo)
	analyticsService := services.NewAnalyticsService(taskRepo, userRepo, cfg.RatePerTask)
	messageService := services.NewMessageService(messageRepo, notificationService, services.NewSupportBot())
	archiver := services.NewArchiver(taskRepo, settingsService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	settingHandler := handlers.NewSettingHandler(settingsService, authService)
	auditHandler := handlers.NewAuditHandler(auditRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Nightly sweep of old completed tasks
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", archiver.Run); err != nil {
		log.Fatalf("Failed to schedule archiver: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskBridge API is running",
		})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	managerOnly := middleware.RequireRole(models.RoleManager)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/board", managerOnly, taskHandler.GetBoard)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id/claim", taskHandler.ClaimTask)
			tasks.PUT("/:id/start", taskHandler.StartTask)
			tasks.PUT("/:id/reject", taskHandler.RejectTask)
			tasks.PUT("/:id/complete", taskHandler.CompleteTask)
			tasks.PUT("/:id/rerequest", taskHandler.ReRequestTask)
			tasks.PUT("/:id/reassign", adminOnly, taskHandler.ReassignTask)
			tasks.PUT("/:id/resolve", adminOnly, taskHandler.ResolveTask)
			tasks.PUT("/:id/quality-score", taskHandler.SetQualityScore)
			tasks.PUT("/:id/backup-assignee", taskHandler.SetBackupAssignee)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/current", authHandler.GetCurrentUser)
			users.PUT("/availability", userHandler.SetAvailability)
			users.DELETE("/:id", adminOnly, userHandler.DeleteUser)
			users.PUT("/:id/role", adminOnly, userHandler.ChangeRole)
			users.PUT("/:id/status", adminOnly, userHandler.ToggleStatus)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// Support chat routes (protected)
		messages := api.Group("/messages")
		messages.Use(requireAuth)
		{
			messages.GET("", messageHandler.ListMessages)
			messages.POST("", messageHandler.SendMessage)
		}

		// Settings routes; the public subset needs no session at all so the
		// login screen can render platform name and maintenance state
		settings := api.Group("/settings")
		{
			settings.GET("/public", settingHandler.PublicSettings)
			settings.GET("", requireAuth, settingHandler.AllSettings)
			settings.POST("", requireAuth, adminOnly, settingHandler.SetSetting)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(requireAuth, adminOnly)
		{
			admin.GET("/logs", auditHandler.ListLogs)
		}

		// Analytics routes
		analytics := api.Group("/analytics")
		analytics.Use(requireAuth)
		{
			analytics.GET("/dashboard", adminOnly, analyticsHandler.GetDashboard)
			analytics.GET("/finance", managerOnly, analyticsHandler.GetFinance)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
