package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"naebak/config"
	"naebak/handler"
	"naebak/notification"
	"naebak/repository"
	"naebak/routes"
	"naebak/schema"
	"naebak/service"
	"naebak/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	schema.InitializeDatabase(db)

	complaintRepo := repository.NewComplaintRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	deputyRepo := repository.NewDeputyRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	govs, types, err := catalogRepo.SeedReferenceData()
	if err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}
	if govs > 0 || types > 0 {
		log.Printf("Seeded reference data: %d governorates, %d complaint types", govs, types)
	}

	notifier := service.NewNotificationService(notificationRepo)
	lifecycleService := service.NewLifecycleService(complaintRepo, notifier)
	assignmentService := service.NewAssignmentService(complaintRepo, deputyRepo, notifier, cfg.Complaints)
	complaintService := service.NewComplaintService(complaintRepo, catalogRepo, assignmentService, lifecycleService, notifier, cfg.Complaints)
	statsService := service.NewStatsService(complaintRepo, catalogRepo)
	authService := service.NewAuthService(deputyRepo, cfg.Auth)

	var sender notification.Sender = notification.LogSender{}
	if cfg.Notify.WebhookURL != "" {
		sender = notification.NewWebhookSender(cfg.Notify.WebhookURL)
	}
	notificationWorker := worker.NewNotificationWorker(notificationRepo, sender,
		time.Duration(cfg.Notify.IntervalSeconds)*time.Second)
	notificationWorker.Start()
	defer notificationWorker.Stop()

	router := routes.SetupRoutes(
		cfg.Auth.JWTSecret,
		handler.NewAuthHandler(authService),
		handler.NewCatalogHandler(catalogRepo),
		handler.NewComplaintHandler(complaintService),
		handler.NewStaffHandler(complaintService, lifecycleService, assignmentService, statsService),
	)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
