package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coinedge/internal/storages"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) users() *mongo.Collection {
	return s.database.Collection(usersCollection)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid document ID %q: %w", id, err)
	}
	return oid, nil
}

// CreateUser создает нового пользователя; email служит естественным ключом
func (s *MongoStorage) CreateUser(ctx context.Context, user *storages.User) error {
	now := time.Now()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Holdings == nil {
		user.Holdings = []storages.Holding{}
	}

	result, err := s.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storages.ErrEmailTaken
		}
		s.logger.Errorf("Failed to create user: %v", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	s.logger.Infof("Created user: %s (ID: %s)", user.Email, user.ID.Hex())
	return nil
}

// GetUserByID возвращает пользователя по ID документа
func (s *MongoStorage) GetUserByID(ctx context.Context, userID string) (*storages.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, storages.ErrUserNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

// GetUserByEmail возвращает пользователя по email
func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*storages.User, error) {
	return s.findUser(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

// GetUserByFirebaseUID возвращает пользователя по Firebase UID
func (s *MongoStorage) GetUserByFirebaseUID(ctx context.Context, uid string) (*storages.User, error) {
	return s.findUser(ctx, bson.M{"firebase_uid": uid})
}

// GetUserByResetToken возвращает пользователя по токену сброса пароля
func (s *MongoStorage) GetUserByResetToken(ctx context.Context, token string) (*storages.User, error) {
	return s.findUser(ctx, bson.M{"reset_token": token})
}

func (s *MongoStorage) findUser(ctx context.Context, filter bson.M) (*storages.User, error) {
	var user storages.User
	err := s.users().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storages.ErrUserNotFound
	}
	if err != nil {
		s.logger.Errorf("Failed to get user: %v", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListUserIDs возвращает идентификаторы всех пользователей (для миграции)
func (s *MongoStorage) ListUserIDs(ctx context.Context) ([]string, error) {
	cursor, err := s.users().Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user ID: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return ids, nil
}

// SetResetToken сохраняет токен сброса пароля и срок его действия
func (s *MongoStorage) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	return s.updateUser(ctx, userID, bson.M{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	})
}

// UpdateUserPassword обновляет хеш пароля и сбрасывает токен восстановления
func (s *MongoStorage) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	oid, err := objectID(userID)
	if err != nil {
		return storages.ErrUserNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		},
		"$unset": bson.M{
			"reset_token":        "",
			"reset_token_expiry": "",
		},
	}

	result, err := s.users().UpdateByID(ctx, oid, update)
	if err != nil {
		s.logger.Errorf("Failed to update password: %v", err)
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return storages.ErrUserNotFound
	}
	return nil
}

// LinkFirebaseUID привязывает Firebase UID к существующему пользователю
func (s *MongoStorage) LinkFirebaseUID(ctx context.Context, userID, uid string) error {
	return s.updateUser(ctx, userID, bson.M{
		"firebase_uid":      uid,
		"provider":          storages.ProviderGoogle,
		"is_email_verified": true,
	})
}

// UpdateTodayReport перезаписывает дневной снимок PnL
func (s *MongoStorage) UpdateTodayReport(ctx context.Context, userID string, pnl, gain float64) error {
	return s.updateUser(ctx, userID, bson.M{
		"today_pnl":  pnl,
		"today_gain": gain,
	})
}

// UpdateHoldings заменяет список активов пользователя
func (s *MongoStorage) UpdateHoldings(ctx context.Context, userID string, holdings []storages.Holding) error {
	if holdings == nil {
		holdings = []storages.Holding{}
	}
	return s.updateUser(ctx, userID, bson.M{"holdings": holdings})
}

func (s *MongoStorage) updateUser(ctx context.Context, userID string, fields bson.M) error {
	oid, err := objectID(userID)
	if err != nil {
		return storages.ErrUserNotFound
	}

	fields["updated_at"] = time.Now()
	result, err := s.users().UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		s.logger.Errorf("Failed to update user %s: %v", userID, err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return storages.ErrUserNotFound
	}
	return nil
}

// UpdateBalance изменяет баланс условным обновлением одного документа.
// Для списания фильтр требует balance >= amount, поэтому баланс не может
// уйти в минус даже при конкурентных запросах.
func (s *MongoStorage) UpdateBalance(ctx context.Context, userID string, amount float64, direction string) (float64, error) {
	oid, err := objectID(userID)
	if err != nil {
		return 0, storages.ErrUserNotFound
	}

	delta := amount
	filter := bson.M{"_id": oid}
	if direction == storages.BalanceSubtract {
		delta = -amount
		filter["balance"] = bson.M{"$gte": amount}
	}

	update := bson.M{
		"$inc": bson.M{"balance": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user storages.User
	err = s.users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Фильтр не совпал: либо пользователя нет, либо не хватило средств
		if _, lookupErr := s.GetUserByID(ctx, userID); lookupErr != nil {
			return 0, lookupErr
		}
		return 0, storages.ErrInsufficientFunds
	}
	if err != nil {
		s.logger.Errorf("Failed to update balance for %s: %v", userID, err)
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	s.logger.Debugf("Balance updated for user %s: %s %.2f -> %.2f", userID, direction, amount, user.Balance)
	return user.Balance, nil
}

// EnsureUserFields дополняет документ пользователя отсутствующими полями
// со значениями по умолчанию. Идемпотентна: повторный вызов ничего не пишет.
func (s *MongoStorage) EnsureUserFields(ctx context.Context, userID string) ([]string, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, storages.ErrUserNotFound
	}

	var raw bson.M
	err = s.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storages.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	missing := storages.MissingUserDefaults(raw)
	if len(missing) == 0 {
		return nil, nil
	}

	set := bson.M{"updated_at": time.Now()}
	updated := make([]string, 0, len(missing))
	for field, value := range missing {
		set[field] = value
		updated = append(updated, field)
	}

	if _, err := s.users().UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		s.logger.Errorf("Failed to backfill user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to backfill user fields: %w", err)
	}

	s.logger.Infof("Backfilled user %s with missing fields: %v", userID, updated)
	return updated, nil
}
