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

	adminUsersHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/admin_users"
	authHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/auth"
	checkinBookingHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/checkin_booking"
	checkoutBookingHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/checkout_booking"
	createBookingHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/create_booking"
	createLotHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/create_lot"
	deleteLotHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/delete_lot"
	evStationsHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/ev_stations"
	getBookingHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/get_booking"
	getLotHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/get_lot"
	getProviderLotsHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/get_provider_lots"
	getUserBookingsHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/health"
	listLotsHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/list_lots"
	updateBookingStatusHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/update_booking_status"
	updateLotHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/update_lot"
	userProfileHandler "github.com/m04kA/ParkEase-Backend/internal/api/handlers/user_profile"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	"github.com/m04kA/ParkEase-Backend/internal/auth"
	"github.com/m04kA/ParkEase-Backend/internal/config"
	"github.com/m04kA/ParkEase-Backend/internal/domain"
	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	evStationRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/evstation"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	adminService "github.com/m04kA/ParkEase-Backend/internal/service/admin"
	authService "github.com/m04kA/ParkEase-Backend/internal/service/authsvc"
	bookingsService "github.com/m04kA/ParkEase-Backend/internal/service/bookings"
	evService "github.com/m04kA/ParkEase-Backend/internal/service/ev"
	lotsService "github.com/m04kA/ParkEase-Backend/internal/service/lots"
	usersService "github.com/m04kA/ParkEase-Backend/internal/service/users"
	checkinBookingUC "github.com/m04kA/ParkEase-Backend/internal/usecase/checkin_booking"
	checkoutBookingUC "github.com/m04kA/ParkEase-Backend/internal/usecase/checkout_booking"
	createBookingUC "github.com/m04kA/ParkEase-Backend/internal/usecase/create_booking"
	updateBookingStatusUC "github.com/m04kA/ParkEase-Backend/internal/usecase/update_booking_status"
	"github.com/m04kA/ParkEase-Backend/pkg/dbmetrics"
	"github.com/m04kA/ParkEase-Backend/pkg/logger"
	"github.com/m04kA/ParkEase-Backend/pkg/metrics"
	"github.com/m04kA/ParkEase-Backend/pkg/simpletxmanager"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
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

	log.Info("Starting ParkEase-Backend...")
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

	// Менеджер JWT-токенов
	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		lotRepository     *lotRepo.Repository
		userRepository    *userRepo.Repository
		stationRepository *evStationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		lotRepository = lotRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		stationRepository = evStationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		lotRepository = lotRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		stationRepository = evStationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, lotRepository, userRepository, log)
	lotsSvc := lotsService.NewService(lotRepository, userRepository, cfg.Search.DefaultRadiusKm, log)
	evSvc := evService.NewService(stationRepository, lotRepository, userRepository, log)
	usersSvc := usersService.NewService(userRepository, txMgr, log)
	adminSvc := adminService.NewService(userRepository, lotRepository, stationRepository, bookingRepository, txMgr, log)
	authSvc := authService.NewService(userRepository, tokenManager, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		lotRepository,
		userRepository,
		txMgr,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		lotRepository,
		userRepository,
		txMgr,
		log,
	)
	checkinBookingUseCase := checkinBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)
	checkoutBookingUseCase := checkoutBookingUC.NewUseCase(
		bookingRepository,
		lotRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler()
	authH := authHandler.NewHandler(authSvc, log)
	listLots := listLotsHandler.NewHandler(lotsSvc, log)
	getLot := getLotHandler.NewHandler(lotsSvc, log)
	createLot := createLotHandler.NewHandler(lotsSvc, log)
	updateLot := updateLotHandler.NewHandler(lotsSvc, log)
	deleteLot := deleteLotHandler.NewHandler(lotsSvc, log)
	getProviderLots := getProviderLotsHandler.NewHandler(lotsSvc, log)
	evStations := evStationsHandler.NewHandler(evSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	checkinBooking := checkinBookingHandler.NewHandler(checkinBookingUseCase, log)
	checkoutBooking := checkoutBookingHandler.NewHandler(checkoutBookingUseCase, log)
	userProfile := userProfileHandler.NewHandler(usersSvc, log)
	adminUsers := adminUsersHandler.NewHandler(adminSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", authH.HandleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authH.HandleLogin).Methods(http.MethodPost)

	// Каталог парковок доступен без токена
	api.HandleFunc("/parking", listLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parking/provider/{providerId}", getProviderLots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parking/{lotId}", getLot.Handle).Methods(http.MethodGet)

	// Станции зарядки доступны без токена
	api.HandleFunc("/ev/stations", evStations.HandleListAll).Methods(http.MethodGet)
	api.HandleFunc("/ev/stations/{parkingLotId}", evStations.HandleListByLot).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenManager))

	protected.HandleFunc("/auth/verify", authH.HandleVerify).Methods(http.MethodGet)

	// --- Парковки (провайдеры) ---
	protected.HandleFunc("/parking", createLot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/parking/{lotId}", updateLot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/parking/{lotId}", deleteLot.Handle).Methods(http.MethodDelete)

	// --- Станции зарядки (провайдеры) ---
	protected.HandleFunc("/ev/stations/{parkingLotId}", evStations.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/ev/stations/{parkingLotId}/{stationId}", evStations.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/ev/stations/{parkingLotId}/{stationId}", evStations.HandleDelete).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/user/{userId}", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/checkin", checkinBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/checkout", checkoutBooking.Handle).Methods(http.MethodPost)

	// --- Профиль, кошелёк, транспорт, сохранённые места ---
	protected.HandleFunc("/users/{userId}", userProfile.HandleGetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}", userProfile.HandleUpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/wallet", userProfile.HandleGetWallet).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/wallet/add", userProfile.HandleTopUp).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/vehicles", userProfile.HandleAddVehicle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/vehicles/{vehicleId}", userProfile.HandleRemoveVehicle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/saved-places", userProfile.HandleAddPlace).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/saved-places/{placeId}", userProfile.HandleRemovePlace).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (только для администраторов)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/users", adminUsers.HandleListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/drivers", adminUsers.HandleListDrivers).Methods(http.MethodGet)
	admin.HandleFunc("/providers", adminUsers.HandleListProviders).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", adminUsers.HandleGetUserDetails).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/suspend", adminUsers.HandleSuspendUser).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{userId}/activate", adminUsers.HandleActivateUser).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{userId}", adminUsers.HandleDeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/stats", adminUsers.HandleStats).Methods(http.MethodGet)

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
