package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinedge/internal/storages"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateWithdrawal сохраняет новую заявку на вывод
func (s *MongoStorage) CreateWithdrawal(ctx context.Context, w *storages.Withdrawal) error {
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	result, err := s.database.Collection(withdrawalsCollection).InsertOne(ctx, w)
	if err != nil {
		s.logger.Errorf("Failed to create withdrawal: %v", err)
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		w.ID = oid
	}

	s.logger.Infof("Created withdrawal: ID=%s, User=%s, Amount=%.2f", w.ID.Hex(), w.UserID, w.Amount)
	return nil
}

// GetUserWithdrawals возвращает заявки пользователя, новые первыми
func (s *MongoStorage) GetUserWithdrawals(ctx context.Context, userID string) ([]storages.Withdrawal, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.database.Collection(withdrawalsCollection).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Errorf("Failed to query withdrawals: %v", err)
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer cursor.Close(ctx)

	var withdrawals []storages.Withdrawal
	if err := cursor.All(ctx, &withdrawals); err != nil {
		s.logger.Errorf("Failed to decode withdrawals: %v", err)
		return nil, fmt.Errorf("failed to decode withdrawals: %w", err)
	}

	return withdrawals, nil
}

// UpdateWithdrawalStatus атомарно переводит заявку в новый статус и возвращает
// документ в состоянии ДО перехода. Прежний статус нужен сервисному слою,
// чтобы возврат средств при pending -> failed/cancelled случился ровно один раз.
func (s *MongoStorage) UpdateWithdrawalStatus(ctx context.Context, withdrawalID, status, transactionID string) (*storages.Withdrawal, error) {
	oid, err := objectID(withdrawalID)
	if err != nil {
		return nil, storages.ErrWithdrawalNotFound
	}

	now := time.Now()
	set := bson.M{
		"status":     status,
		"updated_at": now,
	}
	if transactionID != "" {
		set["transaction_id"] = transactionID
	}
	if status == storages.WithdrawalStatusCompleted || status == storages.WithdrawalStatusFailed {
		set["processed_at"] = now
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var previous storages.Withdrawal
	err = s.database.Collection(withdrawalsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&previous)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storages.ErrWithdrawalNotFound
	}
	if err != nil {
		s.logger.Errorf("Failed to update withdrawal %s: %v", withdrawalID, err)
		return nil, fmt.Errorf("failed to update withdrawal status: %w", err)
	}

	s.logger.Infof("Withdrawal %s status: %s -> %s", withdrawalID, previous.Status, status)
	return &previous, nil
}
