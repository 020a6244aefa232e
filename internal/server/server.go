// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	_ "peached/docs" // swagger docs
	"peached/internal/auth"
	"peached/internal/config"
	"peached/internal/featureflags"
	"peached/internal/middleware"
	"peached/internal/models"
	"peached/internal/observability"
	"peached/internal/repository"
	"peached/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Repositories groups the stores the server reads and writes.
type Repositories struct {
	Users        repository.UserRepository
	Friends      repository.FriendRepository
	BlockedWords repository.BlockedWordRepository
	Posts        repository.PostRepository
}

// NewRepositories builds GORM-backed repositories over db.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:        repository.NewUserRepository(db),
		Friends:      repository.NewFriendRepository(db),
		BlockedWords: repository.NewBlockedWordRepository(db),
		Posts:        repository.NewPostRepository(db),
	}
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager
	tokens         *auth.TokenService

	userRepo repository.UserRepository

	authService         *service.AuthService
	accountService      *service.AccountService
	deactivationService *service.DeactivationService
	friendService       *service.FriendService
	postService         *service.PostService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// The bootstrap layer establishes DB and Redis; redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("server requires a database handle")
	}
	return newServer(cfg, db, redisClient, NewRepositories(db)), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, repos Repositories) *Server {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		tokens:         auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		userRepo:       repos.Users,
	}

	s.authService = service.NewAuthService(repos.Users, s.tokens, cfg.BcryptCost)
	s.accountService = service.NewAccountService(repos.Users, repos.BlockedWords)
	s.deactivationService = service.NewDeactivationService(repos.Users, repos.Friends)
	s.friendService = service.NewFriendService(repos.Users, repos.Friends)
	s.postService = service.NewPostService(repos.Users, repos.Posts)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	// Request ID first so tracing and logging can pick it up.
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + auth.TokenHeader,
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	authed := s.AuthRequired()
	v0 := app.Group("/v0")

	// Credentials
	v0.Post("/users/register", s.Register)
	v0.Post("/auth", s.Login)
	v0.Get("/auth/user", authed, s.GetAuthUser)

	// Users
	v0.Get("/users/self", authed, s.GetSelf)
	v0.Get("/users/lookup/:username", authed, s.LookupUser)
	v0.Delete("/users", authed, s.DeactivateAccount)

	// Account. The availability checks are public.
	v0.Get("/account/username_available/:username", s.UsernameAvailable)
	v0.Get("/account/email_available/:email", s.EmailAvailable)
	v0.Post("/account/password", authed, s.ChangePassword)
	v0.Post("/account/update_profile", authed, s.UpdateProfile)
	v0.Post("/account/username", authed, s.ChangeUsername)
	v0.Get("/account/blocked_words", authed, s.GetBlockedWords)
	v0.Post("/account/blocked_words", authed, s.AddBlockedWord)
	v0.Delete("/account/blocked_words", authed, s.RemoveBlockedWord)
	v0.Get("/feature_flags", authed, s.GetFeatureFlags)

	// Friends
	v0.Get("/friends", authed, s.GetFriends)
	v0.Post("/friends/:username", authed, s.AddFriend)
	v0.Delete("/friends/:username", authed, s.RemoveFriend)

	// Posts. Specific /user/:username before generic /:id.
	v0.Post("/posts", authed, s.CreatePost)
	v0.Get("/posts/user/:username", authed, s.GetUserPosts)
	v0.Delete("/posts/:id", authed, s.DeletePost)
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "peached API",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler renders errors that escape a handler, including Fiber's own
// (unknown route, bad method) in the standard error body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Success: false, Msg: fe.Message})
	}
	return respondError(c, err)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the database and, when configured, Redis. Redis is optional:
// without it the profile cache is bypassed, so its absence does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	} else if redisStatus == "unhealthy" {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// ResumePendingDeactivations finishes deactivations interrupted by a crash or restart.
func (s *Server) ResumePendingDeactivations(ctx context.Context) (int, error) {
	return s.deactivationService.ResumePending(ctx)
}

// Start builds the app and listens on the configured port. It blocks until the
// listener stops.
func (s *Server) Start() error {
	s.app = s.App()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
