package mongodb

import (
	"context"
	"fmt"
	"time"

	"coinedge/internal/storages"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTransaction добавляет запись в журнал операций.
// Журнал append-only: записи после создания не изменяются.
func (s *MongoStorage) CreateTransaction(ctx context.Context, tx *storages.Transaction) error {
	tx.CreatedAt = time.Now()

	result, err := s.database.Collection(transactionsCollection).InsertOne(ctx, tx)
	if err != nil {
		s.logger.Errorf("Failed to create transaction: %v", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tx.ID = oid
	}

	s.logger.Infof("Created transaction: ID=%s, Type=%s, User=%s", tx.ID.Hex(), tx.Type, tx.UserID)
	return nil
}

// GetUserTransactions возвращает транзакции пользователя, новые первыми
func (s *MongoStorage) GetUserTransactions(ctx context.Context, userID string, limit int) ([]storages.Transaction, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.database.Collection(transactionsCollection).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Errorf("Failed to query transactions: %v", err)
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []storages.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		s.logger.Errorf("Failed to decode transactions: %v", err)
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return transactions, nil
}

// ApplyTransactionTotals наращивает накопительные счетчики пользователя
// атомарным $inc, без цикла чтение-изменение-запись
func (s *MongoStorage) ApplyTransactionTotals(ctx context.Context, userID, txType string, amount float64) error {
	oid, err := objectID(userID)
	if err != nil {
		return storages.ErrUserNotFound
	}

	inc := bson.M{}
	switch txType {
	case storages.TransactionTypeDeposit:
		inc["total_deposits"] = amount
	case storages.TransactionTypeWithdrawal:
		inc["total_withdrawals"] = amount
	case storages.TransactionTypeTrade:
		inc["total_trades"] = int64(1)
	default:
		return nil
	}

	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := s.users().UpdateByID(ctx, oid, update)
	if err != nil {
		s.logger.Errorf("Failed to update totals for %s: %v", userID, err)
		return fmt.Errorf("failed to update user totals: %w", err)
	}
	if result.MatchedCount == 0 {
		return storages.ErrUserNotFound
	}
	return nil
}
