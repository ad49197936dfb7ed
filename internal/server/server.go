// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blackbook/internal/cache"
	"blackbook/internal/config"
	"blackbook/internal/database"
	"blackbook/internal/middleware"
	"blackbook/internal/models"
	"blackbook/internal/repository"
	"blackbook/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	auth           *service.AuthService
	users          *service.UserService
	pieces         *service.PieceService
	comments       *service.CommentService
	competitions   *service.CompetitionService
}

// NewServer creates a server instance with all dependencies wired.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	srv := NewServerWithDeps(cfg, db, cache.GetClient())
	// Prometheus collectors register globally, so only the process-level
	// constructor creates them; test servers run without the middleware.
	srv.promMiddleware = middleware.InitMetrics("blackbook-api")
	return srv, nil
}

// NewServerWithDeps wires a server from already-constructed dependencies.
// Tests use this to inject mock databases.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	pieceRepo := repository.NewPieceRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	compRepo := repository.NewCompetitionRepository(db)

	auth := service.NewAuthService(userRepo, cfg)
	uploads := service.NewUploadService(cfg)

	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		auth:         auth,
		users:        service.NewUserService(userRepo, pieceRepo, auth),
		pieces:       service.NewPieceService(pieceRepo, uploads),
		comments:     service.NewCommentService(commentRepo, pieceRepo),
		competitions: service.NewCompetitionService(compRepo, pieceRepo),
	}
}

// DB exposes the underlying database handle for migration at startup.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.FrontendURL
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health", s.HealthCheck)
	app.Static("/uploads", s.config.UploadDir)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	users := api.Group("/users")
	users.Post("/", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Get("/", s.RequireAuth(), s.ListUsers)
	users.Get("/:username/pieces", s.RequireAuth(), s.GetUserPieces)
	users.Get("/:username", s.RequireAuth(), s.GetUser)

	pieces := api.Group("/pieces")
	pieces.Get("/", s.OptionalActor(), s.ListPieces)
	pieces.Post("/", s.RequireAuth(), middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_piece"), s.CreatePiece)
	// Specific /:id/:resource routes before the generic /:id route
	pieces.Post("/:id/like", s.RequireAuth(), s.LikePiece)
	pieces.Delete("/:id/like", s.RequireAuth(), s.UnlikePiece)
	pieces.Get("/:id", s.OptionalActor(), s.GetPiece)
	pieces.Delete("/:id", s.RequireAuth(), s.DeletePiece)

	comments := api.Group("/comments")
	comments.Post("/", s.RequireAuth(), middleware.RateLimit(s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	comments.Get("/piece/:id", s.ListPieceComments)
	comments.Delete("/:id", s.RequireAuth(), s.DeleteComment)

	competitions := api.Group("/competitions")
	competitions.Get("/", s.ListCompetitions)
	competitions.Post("/:id/entries", s.RequireAuth(), s.SubmitCompetitionEntry)
	competitions.Get("/:id", s.GetCompetition)
}

// Root handles the landing request.
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to " + s.config.AppName,
		"docs":    "/health",
	})
}

// HealthCheck reports process and dependency health.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "unhealthy"
		}
	} else {
		dbStatus = "unavailable"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "healthy",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// RequireAuth resolves the bearer token to an active user or rejects the
// request. A missing/invalid token is 401; a valid token for a disabled
// account is 403.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return respondError(c, models.NewUnauthorizedError("Authorization required"))
		}

		user, err := s.auth.ResolveUser(c.UserContext(), tokenString)
		if err != nil {
			return respondError(c, err)
		}
		if user, err = s.auth.RequireActive(user); err != nil {
			return respondError(c, err)
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		return c.Next()
	}
}

// OptionalActor resolves the bearer token if present but never rejects the
// request; failures degrade to an anonymous viewer.
func (s *Server) OptionalActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString != "" {
			if user, err := s.auth.ResolveUser(c.UserContext(), tokenString); err == nil && user.IsActive {
				c.Locals("user", user)
				c.Locals("userID", user.ID)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// App builds the configured Fiber application.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: s.config.AppName,
		// Room above the upload cap so oversized files reach our own 413
		// instead of Fiber's.
		BodyLimit: int(s.config.MaxUploadSize) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start runs the server until Listen returns.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				middleware.Logger.Warn("error closing sql DB", "error", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Warn("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
