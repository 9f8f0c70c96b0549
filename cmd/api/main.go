package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sabrinaansede/apphib/internal/adapter/api"
	"github.com/sabrinaansede/apphib/internal/adapter/api/handler"
	apimiddleware "github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
	"github.com/sabrinaansede/apphib/internal/adapter/api/router"
	"github.com/sabrinaansede/apphib/internal/infrastructure/identity"
	"github.com/sabrinaansede/apphib/internal/infrastructure/ratelimit"
	"github.com/sabrinaansede/apphib/internal/infrastructure/storage"
	"github.com/sabrinaansede/apphib/internal/usecase"
	"github.com/sabrinaansede/apphib/pkg/config"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.Init(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStores(ctx, cfg)
	defer st.close()

	photos, localPhotos, err := openPhotoStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize photo storage: %v", err)
		os.Exit(1)
	}
	defer photos.Close()

	hasher := identity.NewBcryptHasher(0)
	tokens, err := identity.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	if err != nil {
		logger.Error("Failed to initialize token manager: %v", err)
		os.Exit(1)
	}

	authUseCase := usecase.NewAuthUseCase(st.users, hasher, tokens)
	userUseCase := usecase.NewUserUseCase(st.users, hasher)
	placeUseCase := usecase.NewPlaceUseCase(st.places)
	reviewUseCase := usecase.NewReviewUseCase(st.reviews, st.places, st.users, photos)

	handler.Setup(authUseCase, userUseCase, placeUseCase, reviewUseCase)
	handler.SetupHealthHandler(st.health...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := apimiddleware.NewMetrics(reg)

	var limiter apimiddleware.Limiter
	if cfg.RateLimitRPM > 0 {
		rl := ratelimit.NewRateLimiter(cfg.RateLimitRPM)
		rl.StartCleanupRoutine(ctx)
		limiter = rl
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.RequestLogger(zl))
	e.Use(metrics.Middleware)

	router.Setup(e, apimiddleware.NewAuthMiddleware(tokens), limiter, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if localPhotos {
		e.Static(storage.UploadsRoute, cfg.UploadDir)
	}
	e.Static("/", cfg.StaticDir)

	go func() {
		logger.Info("Servidor escuchando en el puerto %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Apagando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
