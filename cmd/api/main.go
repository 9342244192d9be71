package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/warehouse-rental/internal/api/http"
	"github.com/spec-kit/warehouse-rental/internal/api/http/handlers"
	"github.com/spec-kit/warehouse-rental/internal/auth"
	"github.com/spec-kit/warehouse-rental/internal/cache"
	"github.com/spec-kit/warehouse-rental/internal/config"
	"github.com/spec-kit/warehouse-rental/internal/events"
	"github.com/spec-kit/warehouse-rental/internal/observability"
	"github.com/spec-kit/warehouse-rental/internal/persistence"
	"github.com/spec-kit/warehouse-rental/internal/repository"
	"github.com/spec-kit/warehouse-rental/internal/service"
	"github.com/spec-kit/warehouse-rental/internal/worker"
	apperrors "github.com/spec-kit/warehouse-rental/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	roleRepo := repository.NewRoleRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	sectorRepo := repository.NewSectorRepository(pool)
	rentalRepo := repository.NewRentalRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	sectorCache := cache.NewSectorCache(redis.Client, cfg.Redis.SectorCacheTTL(), logger)

	var verifier auth.CredentialVerifier = auth.NewBcryptVerifier(cfg.Auth.BcryptCost)
	if cfg.Auth.PlaintextCredentials {
		logger.Warn("plaintext credential storage enabled; intended for legacy data only")
		verifier = auth.PlaintextVerifier{}
	}
	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	roleService := service.NewRoleService(roleRepo)
	sectorService := service.NewSectorService(sectorRepo, sectorCache, dispatcher)
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		Verifier:   verifier,
		Tokens:     tokenMgr,
		Dispatcher: dispatcher,
	})
	rentalService := service.NewRentalService(service.RentalDependencies{
		RentalRepo: rentalRepo,
		SectorRepo: sectorRepo,
		Cache:      sectorCache,
		Dispatcher: dispatcher,
		Locking:    cfg.Rental.SectorLocking,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokenMgr, userRepo)
	errorMapper := apperrors.NewErrorMapper(cfg.API.LegacyErrorMapping)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Roles:          handlers.NewRolesHandler(roleService),
		Sectors:        handlers.NewSectorsHandler(sectorService),
		Users:          handlers.NewUsersHandler(userService, errorMapper),
		Rentals:        handlers.NewRentalsHandler(rentalService),
		AuthMiddleware: authMiddleware,
		ProtectAdmin:   cfg.Auth.ProtectAdminRoutes,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
