package storages

import (
	"context"
	"time"
)

// Storage определяет интерфейс для работы с документным хранилищем
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*User, error)
	GetUserByResetToken(ctx context.Context, token string) (*User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	LinkFirebaseUID(ctx context.Context, userID, uid string) error
	EnsureUserFields(ctx context.Context, userID string) ([]string, error)

	// Balance operations: условное обновление одним документом,
	// списание ниже нуля отклоняется на стороне хранилища
	UpdateBalance(ctx context.Context, userID string, amount float64, direction string) (float64, error)
	UpdateTodayReport(ctx context.Context, userID string, pnl, gain float64) error
	UpdateHoldings(ctx context.Context, userID string, holdings []Holding) error

	// Transaction operations: журнал append-only, счетчики через атомарный $inc
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetUserTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error)
	ApplyTransactionTotals(ctx context.Context, userID, txType string, amount float64) error

	// Withdrawal operations
	CreateWithdrawal(ctx context.Context, w *Withdrawal) error
	GetUserWithdrawals(ctx context.Context, userID string) ([]Withdrawal, error)
	// UpdateWithdrawalStatus атомарно переводит заявку в новый статус и
	// возвращает документ в состоянии ДО перехода
	UpdateWithdrawalStatus(ctx context.Context, withdrawalID, status, transactionID string) (*Withdrawal, error)

	// Deposit operations
	CreateDeposit(ctx context.Context, d *Deposit) error
	GetUserDeposits(ctx context.Context, userID string) ([]Deposit, error)

	// Contact form
	CreateContactMessage(ctx context.Context, msg *ContactMessage) error

	// Market cache (единый документ на ключ, last-writer-wins)
	GetMarketSnapshot(ctx context.Context, key string) (*MarketSnapshot, error)
	SaveMarketSnapshot(ctx context.Context, snapshot *MarketSnapshot) error

	// Health check
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
