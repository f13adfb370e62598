// Package server contains the HTTP handlers for Warbler's server-rendered pages.
package server

import (
	"context"
	"time"

	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/repository"
	"warbler/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// CurrUserKey is the well-known session key holding the authenticated user's
// id. Its presence is the sole authentication signal the handlers consume.
const CurrUserKey = "curr_user"

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus
	users          repository.UserRepository
	messages       repository.MessageRepository
	follows        repository.FollowRepository
	likes          repository.LikeRepository
	authService    *service.AuthService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized database
// handle. Used by tests and by any bootstrap layer that owns the connection.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)

	return &Server{
		config: cfg,
		db:     db,
		sessions: session.New(session.Config{
			KeyLookup:  "cookie:warbler_session",
			Expiration: 7 * 24 * time.Hour,
		}),
		promMiddleware: middleware.InitMetrics("warbler"),
		users:          userRepo,
		messages:       repository.NewMessageRepository(db),
		follows:        repository.NewFollowRepository(db),
		likes:          repository.NewLikeRepository(db),
		authService:    service.NewAuthService(userRepo),
	}
}

// SetupMiddleware attaches the middleware stack to the app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(s.promMiddleware.Middleware)
	}

	if s.config.IsProduction() {
		app.Use(limiter.New(limiter.Config{
			Max:        300,
			Expiration: time.Minute,
		}))
	}
}

// SetupRoutes registers all HTTP routes. Literal segments register before the
// :id captures so /users/profile is never swallowed by /users/:id.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Home)

	app.Get("/signup", s.ShowSignup)
	app.Post("/signup", s.Signup)
	app.Get("/login", s.ShowLogin)
	app.Post("/login", s.Login)
	app.Post("/logout", s.Logout)

	app.Get("/users", s.ListUsers)
	app.Get("/users/profile", s.ShowEditProfile)
	app.Post("/users/profile", s.EditProfile)
	app.Post("/users/delete", s.DeleteUser)
	app.Post("/users/follow/:id<int>", s.FollowUser)
	app.Post("/users/stop-following/:id<int>", s.StopFollowingUser)
	app.Get("/users/:id<int>", s.ShowUser)
	app.Get("/users/:id<int>/following", s.ShowFollowing)
	app.Get("/users/:id<int>/followers", s.ShowFollowers)
	app.Get("/users/:id<int>/likes", s.ShowLikes)

	app.Post("/messages/new", s.AddMessage)
	app.Get("/messages/:id<int>", s.ShowMessage)
	app.Post("/messages/:id<int>/like", s.LikeMessage)
	app.Post("/messages/:id<int>/delete", s.DeleteMessage)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if client := cache.GetClient(); client != nil {
		if err := client.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
