package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"coinedge/internal/cache"
	"coinedge/internal/coingecko"
	"coinedge/internal/firebase"
	"coinedge/internal/kafka"
	"coinedge/internal/storages"
)

// TokenVerifier проверяет внешние ID-токены
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*firebase.UserInfo, error)
}

// WalletService сервисный слой для бизнес-логики
type WalletService struct {
	storage       storages.Storage
	marketCache   *cache.MarketCache
	marketClient  *coingecko.Client
	kafkaProducer *kafka.Producer
	verifier      TokenVerifier
	resetTokenTTL time.Duration
	clientURL     string
	logger        *logrus.Logger
}

// NewWalletService создает новый экземпляр сервиса
func NewWalletService(
	storage storages.Storage,
	marketCache *cache.MarketCache,
	marketClient *coingecko.Client,
	kafkaProducer *kafka.Producer,
	verifier TokenVerifier,
	resetTokenTTL time.Duration,
	clientURL string,
	logger *logrus.Logger,
) *WalletService {
	return &WalletService{
		storage:       storage,
		marketCache:   marketCache,
		marketClient:  marketClient,
		kafkaProducer: kafkaProducer,
		verifier:      verifier,
		resetTokenTTL: resetTokenTTL,
		clientURL:     clientURL,
		logger:        logger,
	}
}
