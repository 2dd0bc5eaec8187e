package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/activity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/usecase"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Blawness/project-tanah-garapan-sub000/internal/interfaces/http"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/config"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	tanahRepo := postgres.NewTanahGarapanRepository(pool)
	proyekRepo := postgres.NewProyekRepository(pool)
	pembelianRepo := postgres.NewPembelianRepository(pool)
	pembayaranRepo := postgres.NewPembayaranRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := activity.NewRecorder(activityRepo, log, cfg.Activity.BufferSize)
	defer recorder.Close()

	tanahUC := usecase.NewTanahGarapanUseCase(tanahRepo, recorder, log)
	proyekUC := usecase.NewProyekUseCase(proyekRepo, recorder, log)
	pembelianUC := usecase.NewPembelianUseCase(pembelianRepo, proyekRepo, tanahRepo, recorder, log)
	pembayaranUC := usecase.NewPembayaranUseCase(pembayaranRepo, pembelianRepo, txRunner, recorder, log)
	userUC := usecase.NewUserUseCase(userRepo, recorder, log)
	activityUC := usecase.NewActivityLogUseCase(activityRepo)
	authUC := usecase.NewAuthUseCase(userRepo, usecase.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, recorder, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tanah Garapan API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		TanahGarapanUC: tanahUC,
		ProyekUC:       proyekUC,
		PembelianUC:    pembelianUC,
		PembayaranUC:   pembayaranUC,
		UserUC:         userUC,
		AuthUC:         authUC,
		ActivityUC:     activityUC,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
