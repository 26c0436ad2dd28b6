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

	createBookingHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/create_booking"
	createHoldHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/create_hold"
	getSessionHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_session"
	getSessionByReferenceHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/get_session_by_reference"
	listSessionsHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/list_sessions"
	listSlotsHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/list_slots"
	paymentCallbackHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/payment_callback"
	releaseHoldHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/release_hold"
	runMaintenanceHandler "github.com/m04kA/SMC-CoachingService/internal/api/handlers/run_maintenance"
	"github.com/m04kA/SMC-CoachingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoachingService/internal/config"
	sessionRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/slot"
	availabilityClient "github.com/m04kA/SMC-CoachingService/internal/integrations/availability"
	sessionsService "github.com/m04kA/SMC-CoachingService/internal/service/sessions"
	slotsService "github.com/m04kA/SMC-CoachingService/internal/service/slots"
	bookInstantUC "github.com/m04kA/SMC-CoachingService/internal/usecase/book_instant"
	confirmPaymentUC "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_payment"
	holdSlotsUC "github.com/m04kA/SMC-CoachingService/internal/usecase/hold_slots"
	releaseHoldUC "github.com/m04kA/SMC-CoachingService/internal/usecase/release_hold"
	runMaintenanceUC "github.com/m04kA/SMC-CoachingService/internal/usecase/run_maintenance"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/logger"
	"github.com/m04kA/SMC-CoachingService/pkg/metrics"
	"github.com/m04kA/SMC-CoachingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CoachingService/pkg/txmanager"
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

	log.Info("Starting SMC-CoachingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиент провайдера расписания
	availability := availabilityClient.NewClient(
		cfg.Availability.URL,
		time.Duration(cfg.Availability.Timeout)*time.Second,
		log,
	)
	log.Info("Availability client initialized (url=%s, timeout=%ds)",
		cfg.Availability.URL, cfg.Availability.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		sessionRepository *sessionRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы чтения
	sessionSvc := sessionsService.NewService(sessionRepository, log)
	slotSvc := slotsService.NewService(slotRepository, log)

	// Инициализируем use cases
	holdSlotsUseCase := holdSlotsUC.NewUseCase(
		slotRepository,
		sessionRepository,
		txMgr,
		holdSlotsUC.Config{
			HoldTTL:       time.Duration(cfg.Booking.HoldTTLMinutes) * time.Minute,
			BufferMinutes: cfg.Booking.BufferMinutes,
		},
		log,
	)

	bookInstantUseCase := bookInstantUC.NewUseCase(
		slotRepository,
		sessionRepository,
		txMgr,
		bookInstantUC.Config{BufferMinutes: cfg.Booking.BufferMinutes},
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		slotRepository,
		sessionRepository,
		txMgr,
		log,
	)

	releaseHoldUseCase := releaseHoldUC.NewUseCase(slotRepository, log)

	runMaintenanceUseCase := runMaintenanceUC.NewUseCase(
		slotRepository,
		sessionRepository,
		availability,
		runMaintenanceUC.Config{
			StepMinutes:          cfg.Booking.StepMinutes,
			HorizonDays:          cfg.Booking.HorizonDays,
			UnpaidRetentionHours: cfg.Booking.UnpaidRetentionHours,
		},
		log,
	)

	// Инициализируем handlers
	createHold := createHoldHandler.NewHandler(holdSlotsUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(releaseHoldUseCase, log)
	createBooking := createBookingHandler.NewHandler(bookInstantUseCase, log)
	paymentCallback := paymentCallbackHandler.NewHandler(confirmPaymentUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	getSessionByReference := getSessionByReferenceHandler.NewHandler(sessionSvc, log)
	listSessions := listSessionsHandler.NewHandler(sessionSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	runMaintenance := runMaintenanceHandler.NewHandler(runMaintenanceUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь слотов
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// Callback платежного провайдера (аутентифицируется выше по цепочке)
	api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodPost)

	// Поллинг статуса оплаты по платежной ссылке
	api.HandleFunc("/sessions/by-reference/{paymentRef}", getSessionByReference.Handle).Methods(http.MethodGet)

	// Триггер обслуживания календаря (вызывается внешним планировщиком)
	api.HandleFunc("/maintenance/run", runMaintenance.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Удержания (hold-then-pay) ---
	// Создание/продление удержания блока слотов
	protected.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)

	// Досрочное снятие удержания
	protected.HandleFunc("/holds/{holdKey}", releaseHold.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Мгновенное бронирование (create-and-pay-immediately)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// --- Сессии ---
	// Список сессий студента
	protected.HandleFunc("/sessions", listSessions.Handle).Methods(http.MethodGet)

	// Получение сессии по ID
	protected.HandleFunc("/sessions/{sessionId:[0-9]+}", getSession.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
