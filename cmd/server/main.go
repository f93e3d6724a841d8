package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"vokasia/internal/account"
	accounthandler "vokasia/internal/account/handler"
	"vokasia/internal/attendance"
	attendancehandler "vokasia/internal/attendance/handler"
	attendancemetrics "vokasia/internal/attendance/metrics"
	"vokasia/internal/audit"
	"vokasia/internal/certificate"
	certificatehandler "vokasia/internal/certificate/handler"
	"vokasia/internal/platform/config"
	"vokasia/internal/platform/httpserver"
	"vokasia/internal/platform/logger"
	"vokasia/internal/platform/metrics"
	"vokasia/internal/platform/postgres"
	"vokasia/internal/platform/redis"
	"vokasia/internal/qrtoken"
	transporthttp "vokasia/internal/transport/http"
	"vokasia/internal/workshop"
	workshophandler "vokasia/internal/workshop/handler"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional backends. Missing configuration falls back to in-memory
	// stores so a bare binary still serves the full API.
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	rdb, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var (
		accountStore    account.Store         = account.NewInMemoryStore()
		workshopStore   workshop.Store        = workshop.NewInMemoryStore()
		attendanceStore attendance.Store      = attendance.NewInMemoryStore()
		certStore       certificate.Store     = certificate.NewInMemoryStore()
		consumerStore   qrtoken.ConsumerStore = qrtoken.NewInMemoryConsumerStore()
	)
	if db != nil {
		accountStore = account.NewPostgresStore(db)
		workshopStore = workshop.NewPostgresStore(db)
		attendanceStore = attendance.NewPostgresStore(db)
		certStore = certificate.NewPostgresStore(db)
	}
	if rdb != nil {
		consumerStore = qrtoken.NewRedisConsumerStore(rdb.Client)
	}

	// Audit pipeline: non-blocking publisher, worker draining to the store
	// and optionally to Kafka.
	publisher := audit.NewPublisher(cfg.AuditBuffer, log)
	var producer audit.Producer
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := audit.NewKafkaProducer(ctx, cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			return err
		}
		defer kp.Close()
		producer = kp
	}
	auditWorker := audit.NewWorker(audit.NewInMemoryStore(), producer, publisher.Events(), log)

	// Services.
	jwtService := account.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenTTL)
	accountService, err := account.NewService(accountStore, jwtService)
	if err != nil {
		return err
	}
	workshopService, err := workshop.NewService(workshopStore, cfg.DefaultGeofenceRadiusM)
	if err != nil {
		return err
	}

	passIssuer := qrtoken.NewIssuer(cfg.JWTSigningKey, cfg.PassTTL)
	passManager := qrtoken.NewManager(passIssuer)
	defer passManager.StopAll()

	attendanceService, err := attendance.NewService(
		attendanceStore, workshopStore, passIssuer, consumerStore, publisher, attendancemetrics.New())
	if err != nil {
		return err
	}
	certService, err := certificate.NewService(certStore, attendanceService, workshopStore, publisher)
	if err != nil {
		return err
	}

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New(),
		RequestTimeout: 30 * time.Second,
		Handlers: []transporthttp.Registrar{
			accounthandler.New(accountService),
			workshophandler.New(workshopService, log, jwtService),
			attendancehandler.New(attendanceService, workshopService, passManager, log, jwtService),
			certificatehandler.New(certService, workshopService, log, jwtService),
		},
	})

	server := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return auditWorker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
