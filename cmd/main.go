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

	cancelAppointmentHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/cancel_appointment"
	createAbsenceHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/create_absence"
	createAppointmentHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/create_appointment"
	deleteAbsenceHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/delete_absence"
	evaluatePromoHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/evaluate_promo"
	getAppointmentHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingConfigHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/get_booking_config"
	getBusinessAppointmentsHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/get_business_appointments"
	getClientAppointmentsHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/get_client_appointments"
	getPromoRulesHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/get_promo_rules"
	listAbsencesHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/list_absences"
	updateAppointmentStatusHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/update_appointment_status"
	updateBookingConfigHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/update_booking_config"
	updatePromoRulesHandler "github.com/trimly/Trimly-SchedulingService/internal/api/handlers/update_promo_rules"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	"github.com/trimly/Trimly-SchedulingService/internal/config"
	absenceRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/absence"
	appointmentRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/appointment"
	configRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/config"
	promoRuleRepo "github.com/trimly/Trimly-SchedulingService/internal/infra/storage/promorule"
	businessServiceClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	absencesService "github.com/trimly/Trimly-SchedulingService/internal/service/absences"
	appointmentsService "github.com/trimly/Trimly-SchedulingService/internal/service/appointments"
	configService "github.com/trimly/Trimly-SchedulingService/internal/service/config"
	promoRulesService "github.com/trimly/Trimly-SchedulingService/internal/service/promorules"
	createAppointmentUC "github.com/trimly/Trimly-SchedulingService/internal/usecase/create_appointment"
	evaluatePromoUC "github.com/trimly/Trimly-SchedulingService/internal/usecase/evaluate_promo"
	getAvailableSlotsUC "github.com/trimly/Trimly-SchedulingService/internal/usecase/get_available_slots"
	"github.com/trimly/Trimly-SchedulingService/pkg/dbmetrics"
	"github.com/trimly/Trimly-SchedulingService/pkg/logger"
	"github.com/trimly/Trimly-SchedulingService/pkg/metrics"
	"github.com/trimly/Trimly-SchedulingService/pkg/simpletxmanager"
	"github.com/trimly/Trimly-SchedulingService/pkg/txmanager"
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

	log.Info("Starting Trimly-SchedulingService...")
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

	// Инициализируем клиента BusinessService
	businessClient := businessServiceClient.NewClient(
		cfg.BusinessService.URL,
		time.Duration(cfg.BusinessService.Timeout)*time.Second,
		log,
	)
	log.Info("BusinessService client initialized (url=%s, timeout=%ds)",
		cfg.BusinessService.URL, cfg.BusinessService.Timeout)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		absenceRepository     *absenceRepo.Repository
		promoRuleRepository   *promoRuleRepo.Repository
		configRepository      *configRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		absenceRepository = absenceRepo.NewRepository(wrappedDB)
		promoRuleRepository = promoRuleRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		absenceRepository = absenceRepo.NewRepository(db)
		promoRuleRepository = promoRuleRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		businessClient,
		log,
	)
	promoRuleSvc := promoRulesService.NewService(
		promoRuleRepository,
		businessClient,
		txMgr,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		businessClient,
		log,
	)
	absenceSvc := absencesService.NewService(
		absenceRepository,
		businessClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		absenceRepository,
		configRepository,
		businessClient,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		absenceRepository,
		configRepository,
		promoRuleRepository,
		businessClient,
		txMgr,
		log,
	)
	evaluatePromoUseCase := evaluatePromoUC.NewUseCase(
		promoRuleRepository,
		businessClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	evaluatePromo := evaluatePromoHandler.NewHandler(evaluatePromoUseCase, log)
	getPromoRules := getPromoRulesHandler.NewHandler(promoRuleSvc, log)
	getBookingConfig := getBookingConfigHandler.NewHandler(configSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentSvc, log)
	updatePromoRules := updatePromoRulesHandler.NewHandler(promoRuleSvc, log)
	updateBookingConfig := updateBookingConfigHandler.NewHandler(configSvc, log)
	createAbsence := createAbsenceHandler.NewHandler(absenceSvc, log)
	deleteAbsence := deleteAbsenceHandler.NewHandler(absenceSvc, log)
	listAbsences := listAbsencesHandler.NewHandler(absenceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждый запрос получает request id и строку access-лога
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		public.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled for public routes (rps=%.1f, burst=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Доступные слоты мастера на дату
	public.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Предварительная оценка цены с промо-правилами
	public.HandleFunc("/businesses/{businessId}/promo-evaluation",
		evaluatePromo.Handle).Methods(http.MethodGet)

	// Промо-правила бизнеса
	public.HandleFunc("/businesses/{businessId}/promo-rules",
		getPromoRules.Handle).Methods(http.MethodGet)

	// Конфигурация бронирования бизнеса
	public.HandleFunc("/businesses/{businessId}/booking-config",
		getBookingConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для менеджеров)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для менеджеров) ---
	// Список записей бизнеса
	protected.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)

	// Замена набора промо-правил
	protected.HandleFunc("/businesses/{businessId}/promo-rules", updatePromoRules.Handle).Methods(http.MethodPut)

	// Обновление конфигурации бронирования
	protected.HandleFunc("/businesses/{businessId}/booking-config", updateBookingConfig.Handle).Methods(http.MethodPut)

	// Отсутствия мастеров
	protected.HandleFunc("/businesses/{businessId}/absences", createAbsence.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/absences", listAbsences.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/absences/{absenceId}", deleteAbsence.Handle).Methods(http.MethodDelete)

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
