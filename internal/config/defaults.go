package config

import "time"

// Server defaults
const (
	DefaultHTTPPort = "8080"
	DefaultGinMode  = "release"
	DefaultLogLevel = "info"
)

// MongoDB defaults
const (
	DefaultMongoURI         = "mongodb://localhost:27017"
	DefaultMongoDatabase    = "coinedge"
	DefaultMongoTimeout     = 10 * time.Second
	DefaultMongoMaxPoolSize = 100
	DefaultMongoMinPoolSize = 5
)

// JWT defaults
const (
	DefaultJWTSecret     = "change-me-in-production"
	DefaultJWTExpiration = time.Hour
)

// Market data defaults
const (
	DefaultMarketBaseURL  = "https://api.coingecko.com/api/v3"
	DefaultMarketTimeout  = 10 * time.Second
	DefaultMarketCacheTTL = 30 * time.Minute
	DefaultMarketTopCount = 10
)

// Kafka defaults
const (
	DefaultKafkaBrokers         = "localhost:9092"
	DefaultKafkaTopic           = "ledger-events"
	DefaultKafkaAmountThreshold = 10000.0
)

// Password reset defaults
const (
	DefaultResetTokenTTL = time.Hour
	DefaultClientURL     = "http://localhost:8080"
)
