package main

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/viewpost-app/backend/internal/router"
	"github.com/viewpost-app/backend/internal/validators"
	"github.com/viewpost-app/backend/pkg/assets"
	"github.com/viewpost-app/backend/pkg/config"
	"github.com/viewpost-app/backend/pkg/firebase"

	fbauth "firebase.google.com/go/v4/auth"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "server").Logger()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	// Firebase is optional; without credentials only local sign-in works.
	var authClient *fbauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Firebase")
		}
		authClient = firebaseApp.AuthClient
		log.Info().Msg("firebase auth enabled")
	}

	assetStore := assets.NewMongoStore(db.Mongo.Database(cfg.MongoDatabase))

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db.Postgres, assetStore, authClient, cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
