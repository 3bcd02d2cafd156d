package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dsfrGateway/internal/catalog"
	"dsfrGateway/internal/config"
	"dsfrGateway/internal/modules/actions/application/handler"
	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/application/usecase"
	"dsfrGateway/internal/modules/actions/infrastructure"
	transport "dsfrGateway/internal/modules/actions/interface"
	"dsfrGateway/internal/platform/broker"
	"dsfrGateway/internal/shared/auth"
	"dsfrGateway/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	}, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	components, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		slog.Error("components catalog rejected", slog.String("path", cfg.Catalog.Path), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("components catalog loaded", slog.String("path", cfg.Catalog.Path), slog.Any("components", components.Summary()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()

	// Platform adapters
	records := infrastructure.NewRecordHTTPClient(cfg.Platform.BaseURL, cfg.Platform.Timeout, nil)
	uploader := infrastructure.NewUploadHTTPClient(cfg.Platform.BaseURL, cfg.Platform.Timeout, nil)

	// Record versions live in Redis when configured so every instance sees the same counters.
	var versions interface {
		port.RecordRefresher
		port.RecordVersionReader
	}
	if cfg.Redis.Enabled() {
		client, err := infrastructure.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			slog.Error("redis unavailable", slog.Any("error", err))
			os.Exit(1)
		}
		defer client.Close()
		versions = infrastructure.NewRedisRecordVersions(client, cfg.Redis.VersionTTL)
		slog.Info("record versions stored in redis")
	} else {
		versions = infrastructure.NewMemoryRecordVersions()
		slog.Info("record versions kept in memory")
	}
	refresher := infrastructure.NewFanoutRefresher(infrastructure.NewHubRecordRefresher(hub), versions)

	// Use cases
	broadcastUC := usecase.NewBroadcastUseCase(hub)
	var publisher port.NotificationPublisher = infrastructure.NewHubNotificationPublisher(hub)
	if cfg.Kafka.Enabled() {
		kafkaPublisher := broker.NewKafkaNotificationPublisher(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		registry.Register(handler.NewChannelNotificationHandler(cfg.Kafka.NotificationTopic, broadcastUC))
	}
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.String("topic", cfg.Kafka.NotificationTopic))

	guard := usecase.NewInFlightGuard(infrastructure.NewSessionControlNotifier(hub))
	dispatchUC := usecase.NewDispatchUseCase(
		records,
		infrastructure.NewSessionNavigator(hub),
		refresher,
		infrastructure.NewSessionAlertPresenter(hub, cfg.Websocket.AlertAckTimeout),
	)
	buttonUC := usecase.NewActionButtonUseCase(dispatchUC, guard)
	uploadUC := usecase.NewUploadUseCase(uploader, refresher, publisher, guard)
	formUC := usecase.NewRecordFormUseCase(records, records, infrastructure.NewCachedFieldInfos(records, cfg.Platform.FieldInfoTTL), guard)

	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		slog.Error("jwt validator setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	transport.RegisterRoutes(e, transport.Dependencies{
		Hub:            hub,
		Validator:      validator,
		Catalog:        components,
		ValidateAction: catalog.ValidateAction,
		Buttons:        buttonUC,
		Uploads:        uploadUC,
		Forms:          formUC,
		Versions:       versions,
		SendBuffer:     cfg.Websocket.SendBuffer,
		CommandTimeout: cfg.Websocket.CommandTimeout,
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", slog.Any("error", err))
	}
}
