// @title Oneasy Portal API
// @version 1.0
// @description Business registration portal: drafts, fill requests, notices, packages and documents.
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "oneasy-portal/docs"

	"oneasy-portal/bootstrap"
	"oneasy-portal/config"
	"oneasy-portal/database"
	"oneasy-portal/internal/auth"
	"oneasy-portal/internal/logging"
	"oneasy-portal/internal/repository"
	"oneasy-portal/internal/routes"
	"oneasy-portal/internal/services"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("connect mongo", zap.Error(err))
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	logger.Info("connected to mongo", zap.String("db", cfg.MongoDB))

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	catalog, err := config.LoadPackages(cfg.PackagesFile)
	if err != nil {
		logger.Fatal("load packages", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.DocumentDir, 0o750); err != nil {
		logger.Fatal("document dir", zap.Error(err))
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	signer := auth.NewURLSigner(cfg.JWTSecret, cfg.PublicBaseURL, cfg.SignedURLTTL)

	payments := repository.NewPaymentRepository(db)
	app := routes.NewApp(routes.Deps{
		Tokens: tokens,
		Registrations: services.NewRegistrationService(
			repository.NewRegistrationRepository(db),
			repository.NewFillRequestRepository(db),
			payments,
			logger.Named("registrations"),
		),
		Auth:          services.NewAuthService(repository.NewUserRepository(db), tokens, logger.Named("auth")),
		Notices:       services.NewNoticeService(repository.NewNoticeRepository(db)),
		Organizations: services.NewOrganizationService(repository.NewOrganizationRepository(db)),
		Payments:      services.NewPaymentService(catalog, payments),
		Documents:     services.NewDocumentService(cfg.DocumentDir, signer),
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        logger.Named("http"),
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("listen", zap.Error(err))
	}
}
