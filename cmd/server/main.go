package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	billingapp "github.com/gharzo/engine/internal/application/billing"
	complaintapp "github.com/gharzo/engine/internal/application/complaint"
	roomswitchapp "github.com/gharzo/engine/internal/application/roomswitch"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/auth"
	"github.com/gharzo/engine/internal/infrastructure/config"
	"github.com/gharzo/engine/internal/infrastructure/event"
	"github.com/gharzo/engine/internal/infrastructure/lock"
	"github.com/gharzo/engine/internal/infrastructure/logger"
	"github.com/gharzo/engine/internal/infrastructure/persistence"
	"github.com/gharzo/engine/internal/interfaces/http/handler"
	"github.com/gharzo/engine/internal/interfaces/http/middleware"
	"github.com/gharzo/engine/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting GharZo engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Distributed locks: redis when reachable, in-process otherwise
	var locker shared.Locker
	redisLocker, err := lock.NewRedisLocker(lock.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-process locks", zap.Error(err))
		locker = lock.NewMemoryLocker()
	} else {
		locker = redisLocker
		defer func() {
			if err := redisLocker.Close(); err != nil {
				log.Error("Error closing redis locker", zap.Error(err))
			}
		}()
		log.Info("Redis locker connected")
	}

	// Event bus with the audit trail subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Repositories
	complaintRepo := persistence.NewGormComplaintRepository(db.DB)
	roomSwitchRepo := persistence.NewGormRoomSwitchRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	occupancy := persistence.NewGormOccupancyService(db.DB)

	// Application services
	complaintService := complaintapp.NewService(complaintRepo, locker, eventBus, log, complaintapp.Config{
		CodeTTL:     cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
	})
	roomSwitchService := roomswitchapp.NewService(roomSwitchRepo, occupancy, locker, eventBus, log)
	duesService := billingapp.NewDuesService(billRepo, tenantRepo, log)
	forecastService := billingapp.NewForecastService(billRepo, paymentRepo, tenantRepo,
		cfg.Forecast.TrailingMonths, log)

	// Token verification
	verifier := auth.NewTokenVerifier(cfg.JWT)

	// HTTP surface
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuth(middleware.Auth(verifier)),
	)
	r.RegisterPublic(handler.NewHealthHandler(db))
	r.Register(handler.NewComplaintHandler(complaintService))
	r.Register(handler.NewRoomSwitchHandler(roomSwitchService))
	r.Register(handler.NewBillingHandler(duesService, forecastService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
