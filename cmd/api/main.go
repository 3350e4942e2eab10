package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jsandoval/campusmap/internal/adapters/http"
	natsadapter "github.com/jsandoval/campusmap/internal/adapters/nats"
	"github.com/jsandoval/campusmap/internal/adapters/postgres"
	"github.com/jsandoval/campusmap/internal/adapters/valkey"
	"github.com/jsandoval/campusmap/internal/core/domain"
	"github.com/jsandoval/campusmap/internal/core/ports"
	"github.com/jsandoval/campusmap/internal/core/usecases"
	"github.com/jsandoval/campusmap/internal/pkg/config"
	"github.com/jsandoval/campusmap/internal/pkg/logging"
	"github.com/jsandoval/campusmap/internal/pkg/metrics"
	"github.com/jsandoval/campusmap/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("campusmap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Periodically export pool stats
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		events = pub
		defer pub.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	campusRepo := postgres.NewCampusRepo(db)
	buildingRepo := postgres.NewBuildingRepo(db)
	openSpaceRepo := postgres.NewOpenSpaceRepo(db)
	poiRepo := postgres.NewPOIRepo(db)
	pathwayRepo := postgres.NewPathwayRepo(db)
	boundaryRepo := postgres.NewBoundaryRepo(db)
	userRepo := postgres.NewUserRepo(db)
	requestRepo := postgres.NewRequestRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	// Use cases
	campusSvc := usecases.NewCampusService(campusRepo)
	buildingSvc := usecases.NewBuildingService(buildingRepo, cacheSvc, events)
	openSpaceSvc := usecases.NewOpenSpaceService(openSpaceRepo)
	poiSvc := usecases.NewPOIService(poiRepo, cacheSvc)
	pathwaySvc := usecases.NewPathwayService(pathwayRepo)
	boundarySvc := usecases.NewBoundaryService(boundaryRepo)
	userSvc := usecases.NewUserService(userRepo)
	requestSvc := usecases.NewRequestService(requestRepo, campusRepo)
	settingsSvc := usecases.NewSettingsService(settingsRepo, campusRepo)

	importSvc := usecases.NewImportService(campusRepo, events,
		usecases.NewBuildingAdapter(buildingRepo),
		usecases.NewOpenSpaceAdapter(openSpaceRepo),
		usecases.NewPOIAdapter(poiRepo),
		usecases.NewPathwayAdapter(pathwayRepo),
		usecases.NewBoundaryAdapter(boundaryRepo),
	)

	// Invalidate cached lists when another process imports entities.
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats subscriber unavailable", "error", err)
	} else {
		defer sub.Close()
		err = sub.SubscribeEntityCreated(ctx, func(ctx context.Context, kind, campusID, name string) error {
			if kind == domain.KindBuilding {
				buildingSvc.InvalidateCampus(ctx, campusID)
			}
			return nil
		})
		if err != nil {
			slog.Warn("subscribe entity events", "error", err)
		}
		err = sub.SubscribeImportCompleted(ctx, func(ctx context.Context, campusID, kind string, tally *domain.ImportTally) error {
			if kind == domain.KindBuilding {
				buildingSvc.InvalidateCampus(ctx, campusID)
			}
			return nil
		})
		if err != nil {
			slog.Warn("subscribe import events", "error", err)
		}
	}

	deps := &http.Dependencies{
		Campuses:       campusSvc,
		Buildings:      buildingSvc,
		OpenSpaces:     openSpaceSvc,
		POIs:           poiSvc,
		Pathways:       pathwaySvc,
		Boundaries:     boundarySvc,
		Imports:        importSvc,
		Users:          userSvc,
		Requests:       requestSvc,
		Settings:       settingsSvc,
		NATS:           natsConn,
		DB:             db,
		Cache:          cache,
		MaxUploadBytes: int64(cfg.Import.MaxUploadBytes),
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Import.MaxUploadBytes + 64*1024, // upload cap plus multipart overhead
		AppName:      "CampusMap API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
