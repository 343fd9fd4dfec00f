package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "localizei-backend/internal/api/http"
	"localizei-backend/internal/config"
	"localizei-backend/internal/logger"
	"localizei-backend/internal/push"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/repository/postgres"
	"localizei-backend/internal/security"
	"localizei-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Localizei Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize realtime broker backed by Postgres LISTEN/NOTIFY, so
	// status events reach watchers connected to any server instance.
	broker := realtime.NewPostgresBroker(db, cfg.GetDatabaseConnectionString())
	if err := broker.Start(); err != nil {
		logger.Error("Failed to start realtime broker", "error", err)
		log.Fatalf("Failed to start realtime broker: %v", err)
	}
	defer broker.Close()

	// Initialize Push Sender
	var pushSender push.Sender
	if cfg.Push.CredentialsFile != "" {
		fcm, err := push.NewFCMSender(context.Background(), cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM", "error", err)
			log.Fatalf("Failed to initialize FCM: %v", err)
		}
		pushSender = fcm
		logger.Info("FCM push notifications enabled")
	} else {
		pushSender = push.NoopSender{}
		logger.Warn("Push notifications disabled; merchants must poll for pending transactions")
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	paymentSvc := service.NewPaymentService(
		store.TransactionRepository,
		store.WalletRepository,
		store.StoreRepository,
		store.UserRepository,
		pushSender,
		cfg.Cashback.MaxUsePercent,
	)
	approvalSvc := service.NewApprovalService(
		store.TransactionRepository,
		store.StoreRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		broker,
	)
	walletSvc := service.NewWalletService(store.WalletRepository)
	storeSvc := service.NewStoreService(store.StoreRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		TokenManager: tokenManager,
		AuthSvc:      authSvc,
		PaymentSvc:   paymentSvc,
		ApprovalSvc:  approvalSvc,
		WalletSvc:    walletSvc,
		StoreSvc:     storeSvc,
		NoteSvc:      noteSvc,
		Broker:       broker,
	})

	// No WriteTimeout: the watch endpoint holds WebSocket connections open
	// for as long as a transaction stays pending.
	server := &http.Server{
		Addr:        cfg.GetServerAddress(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
