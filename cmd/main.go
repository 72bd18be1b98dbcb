package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createBlockHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_block"
	evaluateSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/evaluate_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getMerchantSettingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_merchant_settings"
	listBlocksHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_blocks"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	settingsCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	blockRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability_block"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	holidayRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/holiday"
	merchantRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/merchant"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	blocksService "github.com/m04kA/SMC-AvailabilityService/internal/service/blocks"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/intervals"
	settingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
	createBlockUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_block"
	evaluateSlotUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Трейсинг (при выключенном - только propagators)
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены). nil *Metrics - no-op.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis для кэша настроек (nil клиент - кэш выключен)
	var redisClient redis.Cmdable
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			// Кэш необязателен, чтение пойдёт в БД
			log.Warn("Redis at %s is unavailable, settings will be read from database: %v", cfg.Redis.Addr, err)
		}
		redisClient = client
		log.Info("Settings cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SettingsTTL)
	}

	// Kafka для событий о конфликтах блокировок
	var publisher createBlockUC.EventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewPublisher(events.NewKafkaWriter(
			cfg.Kafka.BrokerList(),
			cfg.Kafka.BlockConflictsTopic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		))
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Error("Failed to close kafka writer: %v", err)
			}
		}()
		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.BrokerList(), cfg.Kafka.BlockConflictsTopic)
	}

	mergeMode, err := intervals.ParseMergeMode(cfg.Engine.ScheduleMergeMode)
	if err != nil {
		log.Fatal("Invalid schedule merge mode: %v", err)
	}
	capacityShiftMode, err := intervals.ParseMergeMode(cfg.Engine.CapacityShiftMode)
	if err != nil {
		log.Fatal("Invalid capacity shift mode: %v", err)
	}

	// Инициализируем репозитории
	merchantRepository := merchantRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)

	cachedSettings := settingsCache.NewCache(
		merchantRepository,
		redisClient,
		time.Duration(cfg.Redis.SettingsTTL)*time.Second,
		log,
	)

	// Инициализируем сервисы
	resolver := intervals.NewResolver(cachedSettings, holidayRepository, staffRepository, mergeMode, log)
	log.Info("Schedule rows merge mode: %s, capacity shift mode: %s", resolver.Mode(), capacityShiftMode)
	blocksSvc := blocksService.NewService(blockRepository, log)
	settingsSvc := settingsService.NewService(cachedSettings, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		cachedSettings,
		serviceRepository,
		staffRepository,
		resolver,
		bookingRepository,
		blockRepository,
		metricsCollector,
		getAvailableSlotsUC.Options{
			SlotIntervalMinutes: cfg.Engine.SlotIntervalMinutes,
			MaxRangeDays:        cfg.Engine.MaxRangeDays,
		},
		log,
	)

	evaluateSlotUseCase := evaluateSlotUC.NewUseCase(
		txMgr,
		merchantRepository,
		holidayRepository,
		staffRepository,
		bookingRepository,
		blockRepository,
		metricsCollector,
		capacityShiftMode,
		log,
	)

	createBlockUseCase := createBlockUC.NewUseCase(
		txMgr,
		staffRepository,
		blockRepository,
		bookingRepository,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	evaluateSlot := evaluateSlotHandler.NewHandler(evaluateSlotUseCase, log)
	getMerchantSettings := getMerchantSettingsHandler.NewHandler(settingsSvc, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	listBlocks := listBlocksHandler.NewHandler(blocksSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blocksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с rate limit)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		public.Use(limiter.Middleware)
		log.Info("Public rate limit enabled (%.1f rps, burst %d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Доступные слоты сотрудника на диапазон дат
	public.HandleFunc("/merchants/{merchantId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Оценка вместимости окна
	public.HandleFunc("/merchants/{merchantId}/capacity/evaluate",
		evaluateSlot.Handle).Methods(http.MethodPost)

	// Нормализованные настройки мерчанта
	public.HandleFunc("/merchants/{merchantId}/settings",
		getMerchantSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Блокировки сотрудников ---
	protected.HandleFunc("/merchants/{merchantId}/staff/{staffId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/merchants/{merchantId}/staff/{staffId}/blocks", listBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/merchants/{merchantId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// CORS и трейсинг оборачивают весь роутер, чтобы preflight не доходил до mux
	handler := middleware.CORS(cfg.CORS.AllowedOrigins)(r)
	handler = otelhttp.NewHandler(handler, "http.server")

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
