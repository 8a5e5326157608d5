package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/parkease/parkease-backend/internal/clock"
	"github.com/parkease/parkease-backend/internal/config"
	"github.com/parkease/parkease-backend/internal/db"
	httpHandlers "github.com/parkease/parkease-backend/internal/http/handlers"
	httpRouter "github.com/parkease/parkease-backend/internal/http/router"
	"github.com/parkease/parkease-backend/internal/logger"
	"github.com/parkease/parkease-backend/internal/repository"
	"github.com/parkease/parkease-backend/internal/service"
	"github.com/parkease/parkease-backend/internal/storage"
	"github.com/parkease/parkease-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	systemClock := clock.NewSystem()

	documentStorage, err := storage.NewDocumentStorage(cfg.DocumentStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	driverRepo := repository.NewDriverRepository(dbConn)
	providerRepo := repository.NewProviderRepository(dbConn)
	slotRepo := repository.NewSlotRepository(dbConn)
	bookingRepo := repository.NewBookingRepository(dbConn)
	walletRepo := repository.NewWalletRepository(dbConn)
	disputeRepo := repository.NewDisputeRepository(dbConn)
	auditRepo := repository.NewAuditRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	walletService := service.NewWalletService(walletRepo)
	bookingService := service.NewBookingService(bookingRepo, slotRepo, driverRepo, systemClock)
	workflowService := service.NewWorkflowService(providerRepo, driverRepo, disputeRepo, auditRepo, systemClock)
	queryService := service.NewQueryService(slotRepo, bookingRepo, disputeRepo, providerRepo, driverRepo, service.NewCacheService())
	chatbotService := service.NewChatbotService()
	seedService := service.NewSeedService(userRepo, driverRepo, providerRepo, slotRepo, disputeRepo, walletRepo)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()
	bookingService.SetNotifier(hub)
	workflowService.SetNotifier(hub)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	walletHandler := httpHandlers.NewWalletHandler(walletService)
	bookingHandler := httpHandlers.NewBookingHandler(bookingService, queryService)
	slotHandler := httpHandlers.NewSlotHandler(slotRepo, queryService)
	disputeHandler := httpHandlers.NewDisputeHandler(disputeRepo, queryService, workflowService)
	adminHandler := httpHandlers.NewAdminHandler(providerRepo, driverRepo, auditRepo, queryService, workflowService)
	documentHandler := httpHandlers.NewDocumentHandler(documentStorage, providerRepo)
	statsHandler := httpHandlers.NewStatsHandler(queryService)
	chatHandler := httpHandlers.NewChatHandler(chatbotService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		walletHandler,
		bookingHandler,
		slotHandler,
		disputeHandler,
		adminHandler,
		documentHandler,
		statsHandler,
		chatHandler,
		wsHandler,
		healthHandler,
		seedHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
