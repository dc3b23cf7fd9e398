package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	adminController "github.com/glowcare-gm/glowcare-api/controllers/admin"
	assistantControllers "github.com/glowcare-gm/glowcare-api/controllers/assistant"
	"github.com/glowcare-gm/glowcare-api/live"
	"github.com/glowcare-gm/glowcare-api/models"
	"github.com/glowcare-gm/glowcare-api/routes"
	"github.com/glowcare-gm/glowcare-api/storage"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting GlowCare API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.AppUser{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Settings{},
		&models.Event{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Seed reference data
	if err := models.SeedCategories(db); err != nil {
		log.Fatalf("❌ Category seed failed: %v", err)
	}
	if _, err := adminController.EnsureSettings(db); err != nil {
		log.Fatalf("❌ Settings init failed: %v", err)
	}

	// Gin setup
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20 // 32 MB uploads

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	uploadsDir := storage.UploadDir()
	r.Static("/uploads", uploadsDir)

	// Live order feed for admin dashboards
	hub := live.NewHub()
	go hub.Run()

	// Generative-model client (chat + ID verification)
	ai := assistantControllers.NewClientFromEnv()

	routes.SetupRoutes(r, db, hub, ai)

	// Daily backup of uploads at 2 AM, keep 4 days
	backupDir := filepath.Join(filepath.Dir(uploadsDir), "backup", "uploads")
	go storage.StartDailyBackup(uploadsDir, backupDir, 4*24*time.Hour, 2, 0)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), cfg)
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
