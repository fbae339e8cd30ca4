package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coinedge/internal/storages"
)

// newTestService собирает сервис поверх мока без внешних зависимостей
func newTestService(storage storages.Storage) *WalletService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewWalletService(storage, nil, nil, nil, nil, time.Hour, "http://localhost:3000", log)
}

// MockStorage - мок для Storage на основе map
type MockStorage struct {
	users       map[string]*storages.User
	withdrawals map[string]*storages.Withdrawal
	deposits    []storages.Deposit
	txs         []storages.Transaction
	contacts    []storages.ContactMessage
	snapshots   map[string]*storages.MarketSnapshot
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		users:       make(map[string]*storages.User),
		withdrawals: make(map[string]*storages.Withdrawal),
		snapshots:   make(map[string]*storages.MarketSnapshot),
	}
}

func (m *MockStorage) CreateUser(ctx context.Context, user *storages.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range m.users {
		if u.Email == email {
			return storages.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = email
	user.CreatedAt = time.Now()
	m.users[user.ID.Hex()] = user
	return nil
}

func (m *MockStorage) GetUserByID(ctx context.Context, userID string) (*storages.User, error) {
	if user, exists := m.users[userID]; exists {
		return user, nil
	}
	return nil, storages.ErrUserNotFound
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*storages.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storages.ErrUserNotFound
}

func (m *MockStorage) GetUserByFirebaseUID(ctx context.Context, uid string) (*storages.User, error) {
	for _, user := range m.users {
		if user.FirebaseUID == uid {
			return user, nil
		}
	}
	return nil, storages.ErrUserNotFound
}

func (m *MockStorage) GetUserByResetToken(ctx context.Context, token string) (*storages.User, error) {
	for _, user := range m.users {
		if user.ResetToken == token && token != "" {
			return user, nil
		}
	}
	return nil, storages.ErrUserNotFound
}

func (m *MockStorage) ListUserIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStorage) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	user, exists := m.users[userID]
	if !exists {
		return storages.ErrUserNotFound
	}
	user.ResetToken = token
	user.ResetTokenExpiry = &expiry
	return nil
}

func (m *MockStorage) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	user, exists := m.users[userID]
	if !exists {
		return storages.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	return nil
}

func (m *MockStorage) LinkFirebaseUID(ctx context.Context, userID, uid string) error {
	user, exists := m.users[userID]
	if !exists {
		return storages.ErrUserNotFound
	}
	user.FirebaseUID = uid
	user.Provider = storages.ProviderGoogle
	user.IsEmailVerified = true
	return nil
}

func (m *MockStorage) EnsureUserFields(ctx context.Context, userID string) ([]string, error) {
	if _, exists := m.users[userID]; !exists {
		return nil, storages.ErrUserNotFound
	}
	return nil, nil
}

func (m *MockStorage) UpdateBalance(ctx context.Context, userID string, amount float64, direction string) (float64, error) {
	user, exists := m.users[userID]
	if !exists {
		return 0, storages.ErrUserNotFound
	}
	if direction == storages.BalanceSubtract {
		if user.Balance < amount {
			return 0, storages.ErrInsufficientFunds
		}
		user.Balance -= amount
	} else {
		user.Balance += amount
	}
	return user.Balance, nil
}

func (m *MockStorage) UpdateTodayReport(ctx context.Context, userID string, pnl, gain float64) error {
	user, exists := m.users[userID]
	if !exists {
		return storages.ErrUserNotFound
	}
	user.TodayPnL = pnl
	user.TodayGain = gain
	return nil
}

func (m *MockStorage) UpdateHoldings(ctx context.Context, userID string, holdings []storages.Holding) error {
	user, exists := m.users[userID]
	if !exists {
		return storages.ErrUserNotFound
	}
	user.Holdings = holdings
	return nil
}

func (m *MockStorage) CreateTransaction(ctx context.Context, tx *storages.Transaction) error {
	tx.ID = primitive.NewObjectID()
	tx.CreatedAt = time.Now()
	m.txs = append(m.txs, *tx)
	return nil
}

func (m *MockStorage) GetUserTransactions(ctx context.Context, userID string, limit int) ([]storages.Transaction, error) {
	var result []storages.Transaction
	for i := len(m.txs) - 1; i >= 0 && len(result) < limit; i-- {
		if m.txs[i].UserID == userID {
			result = append(result, m.txs[i])
		}
	}
	return result, nil
}

func (m *MockStorage) ApplyTransactionTotals(ctx context.Context, userID, txType string, amount float64) error {
	user, exists := m.users[userID]
	if !exists {
		return storages.ErrUserNotFound
	}
	switch txType {
	case storages.TransactionTypeDeposit:
		user.TotalDeposits += amount
	case storages.TransactionTypeWithdrawal:
		user.TotalWithdrawals += amount
	case storages.TransactionTypeTrade:
		user.TotalTrades++
	}
	return nil
}

func (m *MockStorage) CreateWithdrawal(ctx context.Context, w *storages.Withdrawal) error {
	w.ID = primitive.NewObjectID()
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	m.withdrawals[w.ID.Hex()] = w
	return nil
}

func (m *MockStorage) GetUserWithdrawals(ctx context.Context, userID string) ([]storages.Withdrawal, error) {
	var result []storages.Withdrawal
	for _, w := range m.withdrawals {
		if w.UserID == userID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (m *MockStorage) UpdateWithdrawalStatus(ctx context.Context, withdrawalID, status, transactionID string) (*storages.Withdrawal, error) {
	w, exists := m.withdrawals[withdrawalID]
	if !exists {
		return nil, storages.ErrWithdrawalNotFound
	}
	previous := *w
	w.Status = status
	if transactionID != "" {
		w.TransactionID = transactionID
	}
	w.UpdatedAt = time.Now()
	if status == storages.WithdrawalStatusCompleted || status == storages.WithdrawalStatusFailed {
		now := time.Now()
		w.ProcessedAt = &now
	}
	return &previous, nil
}

func (m *MockStorage) CreateDeposit(ctx context.Context, d *storages.Deposit) error {
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now()
	m.deposits = append(m.deposits, *d)
	return nil
}

func (m *MockStorage) GetUserDeposits(ctx context.Context, userID string) ([]storages.Deposit, error) {
	var result []storages.Deposit
	for i := len(m.deposits) - 1; i >= 0; i-- {
		if m.deposits[i].UserID == userID {
			result = append(result, m.deposits[i])
		}
	}
	return result, nil
}

func (m *MockStorage) CreateContactMessage(ctx context.Context, msg *storages.ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	m.contacts = append(m.contacts, *msg)
	return nil
}

func (m *MockStorage) GetMarketSnapshot(ctx context.Context, key string) (*storages.MarketSnapshot, error) {
	snapshot, exists := m.snapshots[key]
	if !exists {
		return nil, storages.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (m *MockStorage) SaveMarketSnapshot(ctx context.Context, snapshot *storages.MarketSnapshot) error {
	snapshot.UpdatedAt = time.Now()
	m.snapshots[snapshot.Key] = snapshot
	return nil
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }

func (m *MockStorage) Close(ctx context.Context) error { return nil }
