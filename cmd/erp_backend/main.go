package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/scaffold_erp/internal/core/services"
	"github.com/SscSPs/scaffold_erp/internal/events"
	"github.com/SscSPs/scaffold_erp/internal/events/kafka"
	"github.com/SscSPs/scaffold_erp/internal/handlers"
	"github.com/SscSPs/scaffold_erp/internal/middleware"
	"github.com/SscSPs/scaffold_erp/internal/platform/config"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
	"github.com/SscSPs/scaffold_erp/internal/repositories/database/pgsql"
	"github.com/SscSPs/scaffold_erp/pkg/database"
)

const shutdownTimeout = 15 * time.Second

// @title Scaffold ERP API
// @version 1.0
// @description Rental contracts, inventory, HR and double-entry accounting for a scaffolding company.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := newLogger(os.Stdout, true)
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger writes JSON records to w. Debug records are kept outside production.
func newLogger(w io.Writer, isProduction bool) *slog.Logger {
	level := slog.LevelInfo
	if !isProduction {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger = newLogger(os.Stdout, cfg.IsProduction)
	slog.SetDefault(logger)

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established")

	logger.Info("Running database migrations", slog.String("path", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	chart, err := ledgerconfig.DefaultChart()
	if err != nil {
		return err
	}
	rules, err := ledgerconfig.LoadPostingRules(cfg.PostingRulesFile)
	if err != nil {
		return err
	}
	if err := rules.CheckAgainst(chart); err != nil {
		return err
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	var publisher events.Publisher
	var bus *events.Bus
	if cfg.KafkaEnabled() {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing Kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Business events go through Kafka", slog.String("topic", cfg.KafkaTopic))
	} else {
		bus = events.NewBus()
		publisher = bus
		logger.Info("Business events are dispatched in-process")
	}

	container := services.NewServiceContainer(cfg, repos, services.Ledger{Chart: chart, Rules: rules}, publisher)

	consumerDone := make(chan struct{})
	if bus != nil {
		bus.SubscribeAll(container.AutoPosting.HandleBusinessEvent)
		close(consumerDone)
	} else {
		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, container.AutoPosting.HandleBusinessEvent, logger)
		go func() {
			defer close(consumerDone)
			defer consumer.Close()
			if err := consumer.Run(ctx); err != nil {
				logger.Error("Auto-posting consumer stopped", slog.String("error", err.Error()))
			}
		}()
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-consumerDone
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-consumerDone
	logger.Info("Server stopped")
	return nil
}
