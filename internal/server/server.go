// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"threadnest/internal/cache"
	"threadnest/internal/config"
	"threadnest/internal/database"
	"threadnest/internal/middleware"
	"threadnest/internal/models"
	"threadnest/internal/repository"
	"threadnest/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	threadRepo     repository.ThreadRepository
	followRepo     repository.FollowRepository
	imageRepo      repository.ImageRepository
	userService    *service.UserService
	threadService  *service.ThreadService
	codeService    *service.CodeService
	uploadService  *service.UploadService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Useful for tests and tooling that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	followRepo := repository.NewFollowRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("threadnest-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		threadRepo:     threadRepo,
		followRepo:     followRepo,
		imageRepo:      imageRepo,
	}

	server.userService = service.NewUserService(userRepo, followRepo, cfg.DefaultAvatar)
	server.threadService = service.NewThreadService(threadRepo, server.userService)
	server.codeService = service.NewCodeService(redisClient, service.NewEmailService(cfg.ResendAPIKey, cfg.MailFrom))
	server.uploadService = service.NewUploadService(imageRepo, cfg.UploadDir, cfg.PublicBaseURL)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, currentUserId, targetUserId, email, code",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Threadnest Backend Metrics Dashboard",
	}))

	// Uploaded images are served statically from the upload dir.
	if s.config.UploadDir != "" {
		app.Static("/public/images", s.config.UploadDir)
	}

	identified := middleware.Identity(s.config, true)

	// User routes. Specific paths before the generic collection root.
	user := api.Group("/user")
	user.Post("/authentication/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	user.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	user.Get("/exist/:email", s.EmailExists)
	user.Get("/follow", identified, s.FollowUser)
	user.Get("/followers", identified, s.GetFollowers)
	user.Get("/followings", identified, s.GetFollowings)
	user.Post("/profile", identified, s.UpdateProfile)
	user.Patch("/profile/image", identified, s.UpdateProfileImage)
	user.Delete("/profile/image", identified, s.RemoveProfileImage)
	user.Get("/", identified, s.GetUser)

	// Thread routes. Specific paths before the generic /:threadId.
	thread := api.Group("/thread", identified)
	thread.Post("/post", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_thread"), s.CreateThread)
	thread.Get("/favorite/:threadId/:isFavorited", s.FavoriteThread)
	thread.Get("/replies/:mainId", s.GetReplies)
	thread.Delete("/delete/:threadId", s.DeleteThread)
	thread.Post("/save/:threadId", s.SaveThread)
	thread.Patch("/update", s.UpdateThread)
	thread.Get("/:threadId", s.GetThread)

	api.Get("/threads/random", identified, s.GetRandomThreads)

	// Upload routes
	api.Post("/upload/images", identified, s.UploadImages)

	// Confirmation code routes
	api.Get("/code/get", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "confirmation_code"), s.GetCode)
	api.Get("/code/check", s.CheckCode)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Cache and confirmation codes degrade gracefully without Redis.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", userID),          // Subject (user ID as string)
		"username": username,                           // Username (cached in token)
		"iss":      "threadnest-api",                   // Issuer
		"aud":      "threadnest-client",                // Audience
		"exp":      now.Add(time.Hour * 24 * 7).Unix(), // Expiration (7 days)
		"iat":      now.Unix(),                         // Issued at
		"nbf":      now.Unix(),                         // Not before
		"jti":      s.generateJTI(),                    // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Threadnest API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
