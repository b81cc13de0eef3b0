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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	admitBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/admit_booking"
	equipmentHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/equipment"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_bookings"
	reportAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/report_availability"
	reviseBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/revise_booking"
	roomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/rooms"
	withdrawBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/withdraw_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/broker/bookingevents"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/cache/availability"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/equipment"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	userServiceClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	equipmentService "github.com/m04kA/SMC-RoomBookingService/internal/service/equipment"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	admitBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/admit_booking"
	reportAvailabilityUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/report_availability"
	reviseBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/revise_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Без метрик обёртка только прокидывает транзакции из контекста
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Database.SerializableRetries))

	// Redis для кэша отчётов о доступности
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, availability cache disabled: %v", err)
			redisClient.Close()
			redisClient = nil
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancelPing()
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	availabilityCache := availability.NewCache(
		redisClient,
		cfg.Redis.Prefix,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		log,
	)

	// RabbitMQ для событий бронирований
	eventPublisher := bookingevents.NewNopPublisher()
	if cfg.RabbitMQ.Enabled {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Warn("RabbitMQ is unavailable, booking events disabled: %v", err)
		} else {
			defer conn.Close()

			ch, err := conn.Channel()
			if err != nil {
				log.Fatal("Failed to open RabbitMQ channel: %v", err)
			}
			defer ch.Close()

			eventPublisher, err = bookingevents.NewPublisher(ch, cfg.RabbitMQ.Queue)
			if err != nil {
				log.Fatal("Failed to initialize booking events publisher: %v", err)
			}
			log.Info("Booking events are published to queue %s", cfg.RabbitMQ.Queue)
		}
	}

	// Клиент UserService для проверки организатора при бронировании от имени другого пользователя
	var users admitBookingUC.UserDirectory
	if cfg.UserService.URL != "" {
		users = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
			cfg.UserService.URL, cfg.UserService.Timeout)
	}

	// Инициализируем репозитории
	roomRepository := roomRepo.NewRepository(wrappedDB)
	equipmentRepository := equipmentRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Движок допуска
	validator := admission.NewValidator(roomRepository, equipmentRepository, bookingRepository, log)

	// Инициализируем use cases
	admitBookingUseCase := admitBookingUC.NewUseCase(
		bookingRepository,
		validator,
		users,
		txMgr,
		availabilityCache,
		eventPublisher,
		metricsCollector,
		log,
	)
	reviseBookingUseCase := reviseBookingUC.NewUseCase(
		bookingRepository,
		validator,
		txMgr,
		availabilityCache,
		eventPublisher,
		metricsCollector,
		log,
	)
	reportAvailabilityUseCase := reportAvailabilityUC.NewUseCase(
		equipmentRepository,
		bookingRepository,
		txMgr,
		availabilityCache,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		availabilityCache,
		eventPublisher,
		metricsCollector,
		log,
	)
	roomSvc := roomsService.NewService(
		roomRepository,
		equipmentRepository,
		bookingRepository,
		txMgr,
		log,
	)
	equipmentSvc := equipmentService.NewService(
		equipmentRepository,
		bookingRepository,
		txMgr,
		availabilityCache,
		log,
	)

	// Инициализируем handlers
	admitBooking := admitBookingHandler.NewHandler(admitBookingUseCase, log)
	reviseBooking := reviseBookingHandler.NewHandler(reviseBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	withdrawBooking := withdrawBookingHandler.NewHandler(bookingSvc, log)
	reportAvailability := reportAvailabilityHandler.NewHandler(reportAvailabilityUseCase, log)
	roomsCatalog := roomsHandler.NewHandler(roomSvc, log)
	equipmentCatalog := equipmentHandler.NewHandler(equipmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/bookings", admitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", reviseBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", withdrawBooking.Handle).Methods(http.MethodDelete)

	// --- Каталог (чтение доступно всем пользователям) ---
	api.HandleFunc("/equipment/availability", reportAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms", roomsCatalog.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId:[0-9]+}", roomsCatalog.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment", equipmentCatalog.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentId:[0-9]+}", equipmentCatalog.Get).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют роль admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/rooms", roomsCatalog.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{roomId:[0-9]+}", roomsCatalog.Update).Methods(http.MethodPut)
	admin.HandleFunc("/rooms/{roomId:[0-9]+}", roomsCatalog.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/equipment", equipmentCatalog.Create).Methods(http.MethodPost)
	admin.HandleFunc("/equipment/{equipmentId:[0-9]+}", equipmentCatalog.Update).Methods(http.MethodPut)
	admin.HandleFunc("/equipment/{equipmentId:[0-9]+}", equipmentCatalog.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	log.Info("Server stopped gracefully")
}
