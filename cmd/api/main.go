package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/clinic-kit/clinic-service/internal/api/http"
	"github.com/clinic-kit/clinic-service/internal/api/http/handlers"
	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/config"
	"github.com/clinic-kit/clinic-service/internal/events"
	"github.com/clinic-kit/clinic-service/internal/observability"
	"github.com/clinic-kit/clinic-service/internal/persistence"
	"github.com/clinic-kit/clinic-service/internal/repository"
	"github.com/clinic-kit/clinic-service/internal/service"
	"github.com/clinic-kit/clinic-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	reminderRepo := repository.NewReminderRepository(pool)
	prescriptionRepo := repository.NewPrescriptionRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	callbackRepo := repository.NewCallbackRepository(pool)
	otpStore := repository.NewOTPStore(redis.Client, cfg.Auth.OTPTTL())

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		OTPStore: otpStore,
		Logger:   logger,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo:  appointmentRepo,
		PrescriptionRepo: prescriptionRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
	})
	reminderService := service.NewReminderService(reminderRepo, dispatcher)
	rosterService := service.NewRosterService(userRepo, dispatcher, cfg.Auth.BcryptCost, logger)
	intakeService := service.NewIntakeService(callbackRepo, feedbackRepo, dispatcher)

	guard := auth.NewGuard(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService),
		Admin:   handlers.NewAdminHandler(rosterService, appointmentService, intakeService),
		Doctor:  handlers.NewDoctorHandler(appointmentService, reminderService),
		Patient: handlers.NewPatientHandler(appointmentService, intakeService),
		Public:  handlers.NewPublicHandler(rosterService, intakeService),
		Guard:   guard,
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
