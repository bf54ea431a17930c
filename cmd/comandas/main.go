package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/clients"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/events"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/handlers"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/repository"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/server"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/service"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger := logging.New("comandas-service")

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := applyMigrations(db); err != nil {
			logger.Fatal("migrations failed", logging.Fields{"error": err.Error()})
		}
		logger.Info("migrations applied", nil)
		return
	}

	comandaRepo := repository.NewPostgresComandaRepository(db, logger)
	comandaCache := repository.NewRedisComandaCache(cfg.Redis)
	productRepo := repository.NewPostgresProductRepository(db, logger)
	bairroRepo := repository.NewPostgresBairroRepository(db, logger)
	motoboyRepo := repository.NewPostgresMotoboyRepository(db, logger)

	gatewayClient := clients.NewGatewayClient(cfg.Gateway, logger)
	notificationClient := clients.NewNotificationClient(cfg.Notification, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	comandaService := service.NewComandaService(
		comandaRepo,
		comandaCache,
		productRepo,
		bairroRepo,
		motoboyRepo,
		eventPublisher,
		notificationClient,
		cfg,
	)

	paymentService := service.NewPaymentService(
		gatewayClient,
		comandaRepo,
		productRepo,
		bairroRepo,
		comandaService,
		cfg,
	)

	catalogService := service.NewCatalogService(productRepo, bairroRepo)
	deliveryService := service.NewDeliveryService(motoboyRepo, comandaRepo)

	h := handlers.NewHandlers(comandaService, catalogService, deliveryService, paymentService, cfg)
	healthHandlers := handlers.NewHealthHandlers(db)

	srv := server.NewServer(cfg, h, healthHandlers)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	eventConsumer := events.NewKafkaConsumer(cfg.Kafka, comandaService, logger)
	go func() {
		if err := eventConsumer.Start(context.Background()); err != nil {
			logger.Error("event consumer stopped", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eventConsumer.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("server exited", nil)
}

func initDatabase(cfg *config.Config, logger *logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
