package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinedge/internal/api"
	"coinedge/internal/api/middleware"
	"coinedge/internal/cache"
	"coinedge/internal/coingecko"
	"coinedge/internal/config"
	"coinedge/internal/firebase"
	"coinedge/internal/kafka"
	"coinedge/internal/logger"
	"coinedge/internal/service"
	"coinedge/internal/storages/mongodb"
)

// @title CoinEdge API
// @version 1.0
// @description API for crypto portfolio tracking with deposits, withdrawals and market data
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Парсинг флагов командной строки
	configPath := flag.String("c", "", "Path to config file")
	flag.Parse()

	// Загрузка конфигурации
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Валидация конфигурации
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	log := logger.New(cfg.Logger.Level)
	log.Info("Starting coinedge service...")

	// Подключение к документному хранилищу
	mongoConfig := &mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
		MinPoolSize: cfg.Mongo.MinPoolSize,
	}

	storage, err := mongodb.New(mongoConfig, log)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := storage.Close(ctx); err != nil {
			log.Errorf("Failed to close MongoDB connection: %v", err)
		}
	}()

	// Проверка подключения к БД
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := storage.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("MongoDB ping failed: %v", err)
	}
	cancel()
	log.Info("MongoDB connection established")

	// Клиент рыночных данных и кэш поверх хранилища
	marketClient := coingecko.NewClient(cfg.Market.BaseURL, cfg.Market.Timeout, log)
	marketCache := cache.NewMarketCache(storage, cfg.Market.CacheTTL, log)
	log.Info("Market data cache initialized")

	// Инициализация Kafka producer
	kafkaProducer := kafka.NewProducer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.AmountThreshold,
		log,
	)
	defer kafkaProducer.Close()

	// Firebase verifier опционален: без него недоступен только вход через Google
	var verifier service.TokenVerifier
	if cfg.Firebase.CredentialsFile != "" {
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		fbVerifier, err := firebase.NewVerifier(ctx, cfg.Firebase.CredentialsFile, log)
		cancel()
		if err != nil {
			log.Warnf("Firebase verifier unavailable, social login disabled: %v", err)
		} else {
			verifier = fbVerifier
		}
	} else {
		log.Warn("FIREBASE_CREDENTIALS_FILE not set, social login disabled")
	}

	// Создание сервисного слоя
	walletService := service.NewWalletService(
		storage,
		marketCache,
		marketClient,
		kafkaProducer,
		verifier,
		cfg.Reset.TokenTTL,
		cfg.Reset.ClientURL,
		log,
	)
	log.Info("Wallet service initialized")

	// Создание JWT middleware
	jwtMiddleware := middleware.NewJWTMiddleware(cfg.JWT.Secret, log)

	// Настройка роутера
	router := api.SetupRouter(
		walletService,
		jwtMiddleware,
		cfg.JWT.Expiration,
		cfg.Market.TopCount,
		log,
		cfg.Server.GinMode,
	)

	// Создание HTTP сервера
	srv := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Запуск HTTP сервера в горутине
	go func() {
		log.Infof("HTTP server is listening on port %s", cfg.Server.HTTPPort)
		log.Infof("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Ожидание сигнала завершения
	<-done
	log.Info("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
