package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"coinedge/internal/storages"
)

// SnapshotStore хранилище снимков рыночных данных
type SnapshotStore interface {
	GetMarketSnapshot(ctx context.Context, key string) (*storages.MarketSnapshot, error)
	SaveMarketSnapshot(ctx context.Context, snapshot *storages.MarketSnapshot) error
}

// MarketCache кэш рыночных данных с TTL поверх документного хранилища
type MarketCache struct {
	store  SnapshotStore
	ttl    time.Duration
	logger *logrus.Logger
}

// NewMarketCache создает новый кэш рыночных данных
func NewMarketCache(store SnapshotStore, ttl time.Duration, logger *logrus.Logger) *MarketCache {
	return &MarketCache{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// GetOrRefresh возвращает снимок из кэша, если он свежий, иначе обновляет через refresh.
// Второе возвращаемое значение true, если данные пришли из кэша.
func (c *MarketCache) GetOrRefresh(ctx context.Context, key string, refresh func(ctx context.Context) ([]storages.Coin, error)) (*storages.MarketSnapshot, bool, error) {
	snapshot, err := c.store.GetMarketSnapshot(ctx, key)
	if err != nil && !errors.Is(err, storages.ErrSnapshotNotFound) {
		return nil, false, fmt.Errorf("failed to read market snapshot: %w", err)
	}

	if snapshot != nil && time.Since(snapshot.UpdatedAt) < c.ttl {
		c.logger.Debugf("Market snapshot %s served from cache, age %s", key, time.Since(snapshot.UpdatedAt))
		return snapshot, true, nil
	}

	coins, refreshErr := refresh(ctx)
	if refreshErr != nil {
		// Отдаем устаревший снимок, если источник недоступен
		if snapshot != nil {
			c.logger.Warnf("Market refresh failed, serving stale snapshot %s: %v", key, refreshErr)
			return snapshot, true, nil
		}
		return nil, false, fmt.Errorf("failed to refresh market data: %w", refreshErr)
	}

	fresh := &storages.MarketSnapshot{
		Key:   key,
		Coins: coins,
	}

	// Сохранение конкурентно: последняя запись побеждает
	if err := c.store.SaveMarketSnapshot(ctx, fresh); err != nil {
		c.logger.Warnf("Failed to save market snapshot %s: %v", key, err)
	}

	if fresh.UpdatedAt.IsZero() {
		fresh.UpdatedAt = time.Now()
	}

	return fresh, false, nil
}
