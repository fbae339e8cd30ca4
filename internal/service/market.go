package service

import (
	"context"
	"fmt"
	"time"

	"coinedge/internal/storages"
)

// Ключ документа кэша для топа монет
const marketSnapshotKey = "top10"

// TopCoinsResult результат запроса рыночных данных с указанием источника
type TopCoinsResult struct {
	Coins     []storages.Coin
	Source    string
	UpdatedAt string
}

// Источники рыночных данных
const (
	MarketSourceCache = "cache"
	MarketSourceAPI   = "api"
)

// GetTopCoins возвращает топ монет из кэша, обновляя его из CoinGecko по истечении TTL
func (s *WalletService) GetTopCoins(ctx context.Context, limit int) (*TopCoinsResult, error) {
	snapshot, fromCache, err := s.marketCache.GetOrRefresh(ctx, marketSnapshotKey,
		func(ctx context.Context) ([]storages.Coin, error) {
			return s.marketClient.TopCoins(ctx, limit)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to get market data: %w", err)
	}

	source := MarketSourceAPI
	if fromCache {
		source = MarketSourceCache
	}

	return &TopCoinsResult{
		Coins:     snapshot.Coins,
		Source:    source,
		UpdatedAt: snapshot.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}
