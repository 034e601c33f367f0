package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"garment-studio/internal/catalog/handlers"
	"garment-studio/internal/catalog/repository"
	"garment-studio/internal/catalog/storage"
	"garment-studio/internal/common/config"
	"garment-studio/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Catalog Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	dbPath := getenv("CATALOG_DB_PATH", "data/db/catalog.db")
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), getenv("MIGRATIONS_PATH", "migrations/001_init_catalog.sql")); err != nil {
		log.Fatalf("init db: %v", err)
	}

	store := storage.NewFileStorage(getenv("UPLOADS_DIR", "data/uploads"))
	publicURL := getenv("PUBLIC_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))

	catalog := handlers.NewCatalogHandler(repo, store, publicURL)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Catalog Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Catalogue Routes
	// ============================================================

	app.Get("/products/customizable", catalog.ListCustomizable)
	app.Get("/products", catalog.ListProducts)
	app.Post("/products", catalog.CreateProduct)
	app.Get("/products/:id", catalog.GetProduct)
	app.Put("/products/:id", catalog.UpdateProduct)
	app.Delete("/products/:id", catalog.DeleteProduct)

	app.Get("/products/:id/colors", catalog.ListColors)
	app.Post("/products/:id/colors", catalog.CreateColor)
	app.Delete("/products/:id/colors/:colorId", catalog.DeleteColor)

	app.Get("/fabrics", catalog.ListFabrics)
	app.Post("/fabrics", catalog.CreateFabric)
	app.Put("/fabrics/:id", catalog.UpdateFabric)
	app.Delete("/fabrics/:id", catalog.DeleteFabric)

	// ============================================================
	// Enquiries, Reviews, Settings
	// ============================================================

	app.Post("/enquiries", catalog.CreateEnquiry)
	app.Get("/enquiries", catalog.ListEnquiries)
	app.Get("/enquiries/:id", catalog.GetEnquiry)
	app.Delete("/enquiries/:id", catalog.DeleteEnquiry)

	app.Get("/reviews", catalog.ListReviews)
	app.Post("/reviews", catalog.CreateReview)
	app.Put("/reviews/:id", catalog.UpdateReview)
	app.Delete("/reviews/:id", catalog.DeleteReview)

	app.Get("/settings", catalog.ListSettings)
	app.Put("/settings/:key", catalog.SetSetting)

	// ============================================================
	// Binary Uploads
	// ============================================================

	app.Post("/uploads", catalog.UploadFile)
	app.Get("/files/:name", catalog.GetFile)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Catalog Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
