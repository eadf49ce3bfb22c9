package router

import (
	"os"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/viewpost-app/backend/internal/handlers"
	"github.com/viewpost-app/backend/internal/middleware"
	"github.com/viewpost-app/backend/internal/models"
	"github.com/viewpost-app/backend/internal/repositories"
	"github.com/viewpost-app/backend/internal/services"
	"github.com/viewpost-app/backend/pkg/assets"
	"gorm.io/gorm"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Str("component", "router").Logger()

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Migrate brings the relational schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
}

// SetupRoutes wires repositories, services and handlers onto the Echo
// instance. firebaseAuthClient and assetStore may be nil when those
// collaborators are not configured.
func SetupRoutes(e *echo.Echo, db *gorm.DB, assetStore assets.Store, firebaseAuthClient *auth.Client, jwtSecret string) error {
	if err := Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("relational migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewUserRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	postRepo := repositories.NewPostRepository(db)
	followRepo := repositories.NewFollowRepository(db)

	accountService := services.NewAccountService(db, services.NewLogMailer())
	followService := services.NewFollowService(db)
	postService := services.NewPostService(db)
	commentService := services.NewCommentService(db)
	notificationService := services.NewNotificationService(db)
	feedService := services.NewFeedService(db)

	// Unprotected authentication routes
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accountService, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// Protected routes
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))

	profileHandler := handlers.NewProfileHandler(accountService, followService, feedService, postRepo, followRepo)
	profileHandler.RegisterProfileRoutes(api)

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(feedService, userRepo, likeRepo, commentRepo)
	feedHandler.RegisterFeedRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationService, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	if assetStore != nil {
		assetHandler := handlers.NewAssetHandler(assetStore)
		assetHandler.RegisterAssetRoutes(api)
	}

	log.Info().Msg("all routes configured")
	return nil
}
