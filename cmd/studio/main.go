package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"garment-studio/internal/common/config"
	"garment-studio/internal/common/middleware"
	"garment-studio/internal/studio/catalogclient"
	"garment-studio/internal/studio/clipart"
	"garment-studio/internal/studio/export"
	"garment-studio/internal/studio/handlers"
	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/session"
	"garment-studio/internal/studio/submit"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Design Studio Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	catalogURL := getenv("CATALOG_URL", "http://localhost:3001")
	iconURL := getenv("ICON_SERVICE_URL", "https://api.iconify.design")
	uploadURL := getenv("UPLOAD_URL", catalogURL)
	intakeURL := getenv("INTAKE_URL", catalogURL)

	policy := ingest.DefaultPolicy()
	if v := getenvInt("INGEST_MAX_UPLOAD_KB", 0); v > 0 {
		policy.MaxUploadBytes = int64(v) * 1024
	}
	if v := getenvInt("INGEST_KEEP_ORIGINAL_UNDER_KB", 0); v > 0 {
		policy.KeepOriginalUnder = int64(v) * 1024
	}

	sessions := session.NewManager(time.Duration(getenvInt("SESSION_TTL_MINUTES", 120)) * time.Minute)
	catalog := catalogclient.New(catalogURL)
	clip := clipart.NewClient(iconURL)

	exporter := export.New(export.NewHTTPLoader())
	exporter.Width = getenvInt("CANVAS_WIDTH", 800)
	exporter.Height = getenvInt("CANVAS_HEIGHT", 600)

	orch := submit.NewOrchestrator(
		submit.NewHTTPUploader(uploadURL),
		submit.NewHTTPIntake(intakeURL),
		exporter,
	)

	studio := handlers.NewStudioHandler(sessions, catalog, clip, exporter, orch, policy)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Design Studio Service",
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
	// Studio Routes
	// ============================================================

	app.Post("/sessions", studio.CreateSession)
	app.Get("/sessions/:id", studio.GetSession)

	app.Post("/sessions/:id/objects", studio.AddObject)
	app.Patch("/sessions/:id/objects/:oid", studio.UpdateObject)
	app.Delete("/sessions/:id/objects/:oid", studio.RemoveObject)

	app.Post("/sessions/:id/view", studio.SwitchView)
	app.Post("/sessions/:id/color", studio.SwitchColor)
	app.Post("/sessions/:id/product", studio.SwitchProduct)

	app.Post("/sessions/:id/assets", studio.UploadAsset)

	app.Get("/sessions/:id/clipart", studio.SearchClipart)
	app.Post("/sessions/:id/clipart", studio.PlaceClipart)

	app.Post("/sessions/:id/preview/:view", studio.Preview)
	app.Post("/sessions/:id/submit", studio.Submit)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Design Studio Service on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Catalog: %s, icons: %s", catalogURL, iconURL)

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

func getenvInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
