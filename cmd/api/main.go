package main

import (
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
	"github.com/gofiber/fiber/v2/middleware/session"

	"mockmate/interview-coach/internal/config"
	"mockmate/interview-coach/internal/handlers"
	"mockmate/interview-coach/internal/middleware"
	"mockmate/interview-coach/internal/repositories"
	"mockmate/interview-coach/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	cvRepo := repositories.NewCVRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDirs(); err != nil {
		log.Fatalf("❌ Failed to create upload directories: %v", err)
	}

	pdfParser := services.NewPDFParserService()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	transcriptionService := services.NewTranscriptionService(geminiService)

	interviewService := services.NewInterviewService(
		interviewRepo,
		catalogRepo,
		transcriptionService,
		geminiService,
		cfg.Gemini.MaxRetries,
	)

	cvService := services.NewCVService(
		cvRepo,
		pdfParser,
		geminiService,
		cfg.Gemini.MaxRetries,
	)
	log.Println("✅ Services initialized successfully")

	// Session store for cookie-based authentication
	store := session.New(session.Config{
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, store)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, interviewRepo)
	interviewHandler := handlers.NewInterviewHandler(
		interviewService,
		interviewRepo,
		storageService,
		cfg.Storage.MaxAudioSize,
	)
	cvHandler := handlers.NewCVHandler(cvRepo, cvService, storageService, cfg.Storage.MaxUploadSize)
	profileHandler := handlers.NewProfileHandler(userRepo, interviewRepo, cvRepo, storageService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Coach API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxUploadSize),
		ErrorHandler: customErrorHandler,
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public auth endpoints
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)
	api.Post("/auth/logout", authHandler.HandleLogout)

	// Authenticated endpoints
	authed := api.Group("", middleware.RequireAuth(store))

	authed.Get("/catalog", catalogHandler.HandleIndex)
	authed.Get("/catalog/professions/:id/grades/:grade", catalogHandler.HandleProfessionDetail)

	authed.Post("/interviews", interviewHandler.HandleStart)
	authed.Get("/interviews", interviewHandler.HandleHistory)
	authed.Get("/interviews/:id", interviewHandler.HandleDetails)
	authed.Get("/interviews/:id/questions", interviewHandler.HandleQuestions)
	authed.Post("/answers/:id/audio", interviewHandler.HandleSubmitAnswer)

	authed.Post("/cvs", cvHandler.HandleUpload)
	authed.Get("/cvs", cvHandler.HandleList)
	authed.Get("/cvs/:id", cvHandler.HandleGet)
	authed.Get("/cvs/:id/download", cvHandler.HandleDownload)
	authed.Delete("/cvs/:id", cvHandler.HandleDelete)

	authed.Get("/profile", profileHandler.HandleGet)
	authed.Put("/profile", profileHandler.HandleUpdate)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Coach API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"GET /api/v1/catalog",
				"POST /api/v1/interviews",
				"POST /api/v1/answers/:id/audio",
				"POST /api/v1/cvs",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

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
