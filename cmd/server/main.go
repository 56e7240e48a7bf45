package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/workhive/task-management-api/internal/config"
	"github.com/workhive/task-management-api/internal/database"
	"github.com/workhive/task-management-api/internal/email"
	"github.com/workhive/task-management-api/internal/handlers"
	"github.com/workhive/task-management-api/internal/realtime"
	"github.com/workhive/task-management-api/internal/repository"
	"github.com/workhive/task-management-api/internal/services"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		log.Fatalf("Failed to create images directory: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	var mailer email.Sender
	if cfg.SendgridAPIKey != "" {
		mailer = email.NewSendgridSender(cfg.SendgridAPIKey, cfg.FromEmail, cfg.AppName)
	} else {
		log.Println("SENDGRID_API_KEY not set, logging emails to console")
		mailer = email.NewConsoleSender()
	}

	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	designationRepo := repository.NewDesignationRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := services.NewNotificationService(notificationRepo, hub)
	taskService := services.NewTaskService(taskRepo, userRepo, notificationService, mailer, hub, cfg.AppName)
	userService := services.NewUserService(userRepo, mailer, cfg.ImagesDir, cfg.AppName)
	userService.SetTaskChecker(taskService)
	authService := services.NewAuthService(userRepo, userService, mailer, cfg.JWTSecret, cfg.AppName)
	designationService := services.NewDesignationService(designationRepo, userRepo)
	departmentService := services.NewDepartmentService(departmentRepo, userRepo)

	r := gin.Default()
	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:         handlers.NewAuthHandler(authService, cfg.ImagesDir),
		Task:         handlers.NewTaskHandler(taskService, hub),
		User:         handlers.NewUserHandler(userService, cfg.ImagesDir),
		Notification: handlers.NewNotificationHandler(notificationService, hub),
		Designation:  handlers.NewDesignationHandler(designationService),
		Department:   handlers.NewDepartmentHandler(departmentService),
	}, hub, cfg.JWTSecret, cfg.ImagesDir)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
