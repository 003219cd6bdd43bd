package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized successfully (model: %s)\n", cfg.Gemini.Model)

	// Initialize services
	extractor := services.NewDocumentExtractor()
	uploads := services.NewUploadReader(cfg.Storage.MaxFileSize)
	gateway := services.NewAnalysisGateway(geminiService)
	log.Println("✅ Services initialized successfully")

	// Initialize worker
	worker := services.NewWorker(extractor, cfg.Worker.Concurrency, cfg.Worker.QueueSize)

	// Start worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	workspace := services.NewWorkspace(worker, gateway, cfg.Intake.SettleDelay)

	// Initialize Handlers
	h := handlers.Handlers{
		Workspace: handlers.NewWorkspaceHandler(workspace),
		Slots:     handlers.NewSlotHandler(workspace, uploads),
		Analyze:   handlers.NewAnalyzeHandler(workspace),
		Result:    handlers.NewResultHandler(workspace),
		Match:     handlers.NewMatchHandler(uploads, extractor, gateway),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:           "MatchAI Resume Matcher API",
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		BodyLimit:         int(2*cfg.Storage.MaxFileSize) + 64*1024,
		ErrorHandler:      customErrorHandler,
		EnablePrintRoutes: cfg.IsDevelopment(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	handlers.RegisterRoutes(app, h)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "MatchAI Resume Matcher API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s (env: %s)\n", addr, cfg.Server.Env)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
