// Command loaddata initializes the schema, seeds the reference catalog and
// optionally creates a staff account. Safe to run repeatedly; seeding is
// idempotent.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"naebak/config"
	"naebak/models"
	"naebak/repository"
	"naebak/schema"
	"naebak/utils"
)

func main() {
	var (
		adminEmail    = flag.String("admin-email", "", "create an admin account with this email")
		adminPassword = flag.String("admin-password", "", "password for the admin account")
		adminName     = flag.String("admin-name", "Administrator", "display name for the admin account")
	)
	flag.Parse()

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

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	schema.InitializeDatabase(db)

	catalogRepo := repository.NewCatalogRepository(db)
	govs, types, err := catalogRepo.SeedReferenceData()
	if err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}
	log.Printf("Seeded %d governorates and %d complaint types", govs, types)

	if *adminEmail == "" {
		return
	}
	if *adminPassword == "" {
		log.Fatal("-admin-password is required with -admin-email")
	}

	deputyRepo := repository.NewDeputyRepository(db)
	if _, err := deputyRepo.GetDeputyByEmail(*adminEmail); err == nil {
		log.Printf("Account %s already exists, skipping", *adminEmail)
		return
	}

	hash, err := utils.HashPassword(*adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	admin := &models.Deputy{
		FullName:     *adminName,
		Email:        *adminEmail,
		PasswordHash: hash,
		Role:         models.ActorAdmin,
		Council:      models.CouncilBoth,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := deputyRepo.CreateDeputy(admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}
	log.Printf("Created admin account %s (id %d)", admin.Email, admin.ID)
}
