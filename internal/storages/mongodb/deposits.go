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

// CreateDeposit сохраняет запись о подтвержденном пополнении
func (s *MongoStorage) CreateDeposit(ctx context.Context, d *storages.Deposit) error {
	d.CreatedAt = time.Now()

	result, err := s.database.Collection(depositsCollection).InsertOne(ctx, d)
	if err != nil {
		s.logger.Errorf("Failed to create deposit: %v", err)
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}

	s.logger.Infof("Created deposit: ID=%s, User=%s, Amount=%.2f %s", d.ID.Hex(), d.UserID, d.Amount, d.Crypto)
	return nil
}

// GetUserDeposits возвращает пополнения пользователя, новые первыми
func (s *MongoStorage) GetUserDeposits(ctx context.Context, userID string) ([]storages.Deposit, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.database.Collection(depositsCollection).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Errorf("Failed to query deposits: %v", err)
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer cursor.Close(ctx)

	var deposits []storages.Deposit
	if err := cursor.All(ctx, &deposits); err != nil {
		s.logger.Errorf("Failed to decode deposits: %v", err)
		return nil, fmt.Errorf("failed to decode deposits: %w", err)
	}

	return deposits, nil
}

// CreateContactMessage сохраняет сообщение из формы обратной связи
func (s *MongoStorage) CreateContactMessage(ctx context.Context, msg *storages.ContactMessage) error {
	msg.CreatedAt = time.Now()

	result, err := s.database.Collection(contactsCollection).InsertOne(ctx, msg)
	if err != nil {
		s.logger.Errorf("Failed to save contact message: %v", err)
		return fmt.Errorf("failed to save contact message: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}
