package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinedge/internal/storages"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMarketSnapshot читает кеш-документ рыночных данных по ключу
func (s *MongoStorage) GetMarketSnapshot(ctx context.Context, key string) (*storages.MarketSnapshot, error) {
	var snapshot storages.MarketSnapshot
	err := s.database.Collection(marketCacheCollection).
		FindOne(ctx, bson.M{"_id": key}).
		Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storages.ErrSnapshotNotFound
	}
	if err != nil {
		s.logger.Errorf("Failed to read market snapshot %s: %v", key, err)
		return nil, fmt.Errorf("failed to read market snapshot: %w", err)
	}
	return &snapshot, nil
}

// SaveMarketSnapshot перезаписывает кеш-документ целиком (last-writer-wins,
// конкурентные записи при одновременном cache-miss допустимы)
func (s *MongoStorage) SaveMarketSnapshot(ctx context.Context, snapshot *storages.MarketSnapshot) error {
	snapshot.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := s.database.Collection(marketCacheCollection).
		ReplaceOne(ctx, bson.M{"_id": snapshot.Key}, snapshot, opts)
	if err != nil {
		s.logger.Errorf("Failed to save market snapshot %s: %v", snapshot.Key, err)
		return fmt.Errorf("failed to save market snapshot: %w", err)
	}

	s.logger.Debugf("Market snapshot %s refreshed (%d coins)", snapshot.Key, len(snapshot.Coins))
	return nil
}
