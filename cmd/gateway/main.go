package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"garment-studio/internal/common/config"
	"garment-studio/internal/common/middleware"
	"garment-studio/internal/gateway/handlers"
	"garment-studio/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check & Docs
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Garment Studio API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Catalog Service
	catalogURL := getEnv("CATALOG_URL", "http://localhost:3001")
	for _, route := range []string{
		"/products", "/products/customizable", "/products/:id",
		"/products/:id/colors", "/products/:id/colors/:colorId",
		"/fabrics", "/fabrics/:id",
		"/enquiries", "/enquiries/:id",
		"/reviews", "/reviews/:id",
		"/settings", "/settings/:key",
		"/uploads", "/files/:name",
	} {
		api.All(route, func(c fiber.Ctx) error {
			target := catalogURL + c.Path()[len("/api/v1"):]
			if q := c.Request().URI().QueryString(); len(q) > 0 {
				target += "?" + string(q)
			}
			return proxy.Forward(c, target)
		})
	}

	// Design Studio Service
	studioURL := getEnv("STUDIO_URL", "http://localhost:3002")
	api.All("/sessions", func(c fiber.Ctx) error {
		return proxy.Forward(c, studioURL+c.Path()[len("/api/v1"):])
	})
	api.All("/sessions/*", func(c fiber.Ctx) error {
		target := studioURL + c.Path()[len("/api/v1"):]
		if q := c.Request().URI().QueryString(); len(q) > 0 {
			target += "?" + string(q)
		}
		return proxy.Forward(c, target)
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying catalog to %s, studio to %s", catalogURL, studioURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
