package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jkimani/device_tracking_system/internal/broadcast"
	"github.com/jkimani/device_tracking_system/internal/config"
	v1 "github.com/jkimani/device_tracking_system/internal/handler/http/v1"
	"github.com/jkimani/device_tracking_system/internal/ingress"
	"github.com/jkimani/device_tracking_system/internal/mobile"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/repository"
	"github.com/jkimani/device_tracking_system/internal/service"
	"github.com/jkimani/device_tracking_system/internal/tracking"
	"github.com/jkimani/device_tracking_system/pkg/logger"
	"github.com/jkimani/device_tracking_system/pkg/postgres"
	redisclient "github.com/jkimani/device_tracking_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/jkimani/device_tracking_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Device Tracking System API
// @version 1.0
// @description Real-time tracking core for lost devices and vehicles.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// carrierAdapters собирает адаптеры кенийских операторов с базовыми
// станциями вокруг Найроби
func carrierAdapters(cfg *config.Config) mobile.AdapterRegistry {
	return mobile.NewAdapterRegistry(
		mobile.NewSimulatedAdapter(mobile.SimulatedAdapterConfig{
			Carrier: models.CarrierSafaricom,
			Latency: cfg.CarrierLatency,
			CellSites: []models.Coordinate{
				{Latitude: -1.2921, Longitude: 36.8219}, // Nairobi CBD
				{Latitude: -1.2636, Longitude: 36.8056}, // Westlands
				{Latitude: -1.3192, Longitude: 36.8856}, // South B
			},
		}),
		mobile.NewSimulatedAdapter(mobile.SimulatedAdapterConfig{
			Carrier: models.CarrierAirtel,
			Latency: cfg.CarrierLatency,
			CellSites: []models.Coordinate{
				{Latitude: -1.2864, Longitude: 36.8172},
				{Latitude: -1.3032, Longitude: 36.7073}, // Karen
			},
		}),
		mobile.NewSimulatedAdapter(mobile.SimulatedAdapterConfig{
			Carrier: models.CarrierTelkom,
			Latency: cfg.CarrierLatency,
			CellSites: []models.Coordinate{
				{Latitude: -1.2833, Longitude: 36.8167},
			},
		}),
	)
}

// rehydrate восстанавливает активные сущности из хранилища в ядро
// отслеживания после рестарта
func rehydrate(ctx context.Context, repo service.TrackingRepository, trackingService service.TrackingService, log *logrus.Logger) {
	entities, err := repo.ListActiveEntities(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to rehydrate active entities")
		return
	}
	for _, entity := range entities {
		if err := trackingService.RegisterEntity(ctx, entity); err != nil {
			log.WithError(err).WithField("entity_id", entity.ID).Warn("Failed to rehydrate entity")
		}
	}
	log.WithField("count", len(entities)).Info("Active entities rehydrated")
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя трансляции обновлений
	publisher := broadcast.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера доставки вебхуков
	worker := broadcast.NewWorker(redisClient, log, cfg)
	worker.Start(ctx)

	// Инициализация репозитория
	repo := repository.NewTrackingRepository(dbpool, redisClient, cfg.LocationCacheTTL)

	// Ядро отслеживания в памяти
	bus := tracking.NewBus(cfg.BusQueueSize, log)
	filter := tracking.NewPositionFilter(cfg.SignificanceThresholdMeters)
	store := tracking.NewStore(filter, bus, cfg.HistoryCap, log)

	// Инициализация сервисов
	trackingService := service.NewTrackingService(store, bus, repo, publisher, log, cfg)
	defer trackingService.Close()

	authorizer := mobile.NewDispatchAuthorizer(repo)
	pipeline := mobile.NewPipeline(authorizer, carrierAdapters(cfg), store, log)
	mobileService := service.NewMobileTrackingService(pipeline, repo, log)

	// Восстановление активных сущностей после рестарта
	rehydrate(ctx, repo, trackingService, log)

	// Опциональный вход телеметрии реальных устройств через MQTT
	if cfg.MQTTBroker != "" {
		mqttIngress := ingress.NewMQTTIngress(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic, trackingService, log)
		if err := mqttIngress.Start(ctx); err != nil {
			log.WithError(err).Warn("Failed to start MQTT ingress, continuing without it")
		} else {
			defer mqttIngress.Stop()
			log.Info("MQTT telemetry ingress started")
		}
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(trackingService, mobileService, log, cfg)

	// Настройка Gin роутера; health-check остается вне аутентификации
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)
	api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
