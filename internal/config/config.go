package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Market   MarketConfig
	Kafka    KafkaConfig
	Firebase FirebaseConfig
	Reset    ResetConfig
	Logger   LoggerConfig
}

// ServerConfig содержит конфигурацию сервера
type ServerConfig struct {
	HTTPPort string
	GinMode  string
}

// MongoConfig содержит конфигурацию документного хранилища
type MongoConfig struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize uint64
	MinPoolSize uint64
}

// JWTConfig содержит конфигурацию JWT
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// MarketConfig содержит конфигурацию прокси рыночных данных
type MarketConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	TopCount int
}

// KafkaConfig содержит конфигурацию продюсера событий леджера
type KafkaConfig struct {
	Brokers         []string
	Topic           string
	AmountThreshold float64
}

// FirebaseConfig содержит конфигурацию Firebase Admin SDK
type FirebaseConfig struct {
	CredentialsFile string
}

// ResetConfig содержит конфигурацию восстановления пароля
type ResetConfig struct {
	TokenTTL  time.Duration
	ClientURL string
}

// LoggerConfig содержит конфигурацию логгера
type LoggerConfig struct {
	Level string
}

// Load загружает конфигурацию из файла окружения
func Load(configPath string) (*Config, error) {
	// Загрузка переменных окружения из файла
	if configPath != "" {
		if err := godotenv.Load(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg := &Config{}

	// Server
	cfg.Server.HTTPPort = getEnv("HTTP_PORT", DefaultHTTPPort)
	cfg.Server.GinMode = getEnv("GIN_MODE", DefaultGinMode)

	// MongoDB
	cfg.Mongo.URI = getEnv("MONGO_URI", DefaultMongoURI)
	cfg.Mongo.Database = getEnv("MONGO_DATABASE", DefaultMongoDatabase)
	cfg.Mongo.Timeout = getEnvDuration("MONGO_TIMEOUT", DefaultMongoTimeout)
	cfg.Mongo.MaxPoolSize = uint64(getEnvInt("MONGO_MAX_POOL_SIZE", DefaultMongoMaxPoolSize))
	cfg.Mongo.MinPoolSize = uint64(getEnvInt("MONGO_MIN_POOL_SIZE", DefaultMongoMinPoolSize))

	// JWT
	cfg.JWT.Secret = getEnv("JWT_SECRET", DefaultJWTSecret)
	cfg.JWT.Expiration = getEnvDuration("JWT_EXPIRATION", DefaultJWTExpiration)

	// Market data
	cfg.Market.BaseURL = getEnv("MARKET_BASE_URL", DefaultMarketBaseURL)
	cfg.Market.Timeout = getEnvDuration("MARKET_TIMEOUT", DefaultMarketTimeout)
	cfg.Market.CacheTTL = getEnvDuration("MARKET_CACHE_TTL", DefaultMarketCacheTTL)
	cfg.Market.TopCount = getEnvInt("MARKET_TOP_COUNT", DefaultMarketTopCount)

	// Kafka
	cfg.Kafka.Brokers = strings.Split(getEnv("KAFKA_BROKERS", DefaultKafkaBrokers), ",")
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", DefaultKafkaTopic)
	cfg.Kafka.AmountThreshold = getEnvFloat("KAFKA_AMOUNT_THRESHOLD", DefaultKafkaAmountThreshold)

	// Firebase
	cfg.Firebase.CredentialsFile = getEnv("FIREBASE_CREDENTIALS_FILE", "")

	// Password reset
	cfg.Reset.TokenTTL = getEnvDuration("RESET_TOKEN_TTL", DefaultResetTokenTTL)
	cfg.Reset.ClientURL = getEnv("CLIENT_URL", DefaultClientURL)

	// Logger
	cfg.Logger.Level = getEnv("LOG_LEVEL", DefaultLogLevel)

	return cfg, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленную переменную окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения типа float64
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения типа duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Market.TopCount <= 0 {
		return fmt.Errorf("MARKET_TOP_COUNT must be positive")
	}

	if _, err := logrus.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logger.Level)
	}

	return nil
}
