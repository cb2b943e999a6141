package router

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/handlers"
	"github.com/fullstackdevx/fso-part4/internal/middleware"
	"github.com/fullstackdevx/fso-part4/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	PostRepository repositories.PostRepository
	UserRepository repositories.UserRepository
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	Log            *slog.Logger
}

// SetupRoutes builds the MongoDB repositories, ensures indexes and registers all routes
func SetupRoutes(ctx context.Context, e *echo.Echo, db *mongo.Database, deps Deps) error {
	userRepo := repositories.NewMongoUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}
	deps.Log.Info("MongoDB indexes ensured")

	deps.UserRepository = userRepo
	deps.PostRepository = repositories.NewMongoPostRepository(db)
	Register(e, deps)
	return nil
}

// Register wires handlers onto e
func Register(e *echo.Echo, deps Deps) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api")
	auth := middleware.JWTAuthMiddleware(deps.JWTSecret)

	postHandler := handlers.NewPostHandler(deps.PostRepository, deps.UserRepository, deps.Log)
	postHandler.RegisterPostRoutes(api, auth)

	likeHandler := handlers.NewLikeHandler(deps.PostRepository, deps.UserRepository, deps.Log)
	likeHandler.RegisterLikeRoutes(api, auth)

	userHandler := handlers.NewUserHandler(deps.UserRepository, deps.PostRepository, deps.BcryptCost, deps.Log)
	userHandler.RegisterUserRoutes(api)

	authHandler := handlers.NewAuthHandler(deps.UserRepository, deps.JWTSecret, deps.TokenTTL, deps.BcryptCost, deps.Log)
	authHandler.RegisterAuthRoutes(api)

	statsHandler := handlers.NewStatsHandler(deps.PostRepository)
	statsHandler.RegisterStatsRoutes(api)

	deps.Log.Debug("all routes configured")
}
