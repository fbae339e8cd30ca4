package storages

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User представляет пользователя системы со всеми финансовыми полями
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"password_hash,omitempty" json:"-"`
	Provider         string             `bson:"provider" json:"provider"`
	FirebaseUID      string             `bson:"firebase_uid,omitempty" json:"-"`
	IsEmailVerified  bool               `bson:"is_email_verified" json:"isEmailVerified"`
	ProfilePicture   string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Balance          float64            `bson:"balance" json:"balance"`
	TotalDeposits    float64            `bson:"total_deposits" json:"totalDeposits"`
	TotalWithdrawals float64            `bson:"total_withdrawals" json:"totalWithdrawals"`
	TotalTrades      int64              `bson:"total_trades" json:"totalTrades"`
	TodayPnL         float64            `bson:"today_pnl" json:"todayPnL"`
	TodayGain        float64            `bson:"today_gain" json:"todayGain"`
	Holdings         []Holding          `bson:"holdings" json:"holdings"`
	ResetToken       string             `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry *time.Time         `bson:"reset_token_expiry,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Holding позиция пользователя по одному активу
type Holding struct {
	Symbol     string  `bson:"symbol" json:"symbol"`
	Name       string  `bson:"name" json:"name"`
	Balance    float64 `bson:"balance" json:"balance"`
	Value      float64 `bson:"value" json:"value"`
	Allocation float64 `bson:"allocation" json:"allocation"`
	Change24h  float64 `bson:"change_24h" json:"change24h"`
}

// Transaction представляет запись в журнале операций (append-only, после создания не меняется)
type Transaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	Type          string             `bson:"type" json:"type"` // deposit, withdrawal, trade
	Amount        float64            `bson:"amount" json:"amount"`
	Status        string             `bson:"status" json:"status"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Crypto        string             `bson:"crypto,omitempty" json:"crypto,omitempty"`
	WalletAddress string             `bson:"wallet_address,omitempty" json:"walletAddress,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

// Withdrawal представляет заявку на вывод средств
type Withdrawal struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	Amount        float64            `bson:"amount" json:"amount"`
	WalletAddress string             `bson:"wallet_address" json:"walletAddress"`
	Status        string             `bson:"status" json:"status"`
	TransactionID string             `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
	ProcessedAt   *time.Time         `bson:"processed_at,omitempty" json:"processedAt,omitempty"`
}

// Deposit представляет подтвержденное пополнение (append-only, статус задается при создании)
type Deposit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Crypto        string             `bson:"crypto" json:"crypto"`
	TxHash        string             `bson:"tx_hash,omitempty" json:"txHash,omitempty"`
	WalletAddress string             `bson:"wallet_address,omitempty" json:"walletAddress,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}

// ContactMessage сообщение из формы обратной связи
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Coin один элемент рыночного снимка (топ монет по капитализации)
type Coin struct {
	Rank      int       `bson:"rank" json:"rank"`
	CoinID    string    `bson:"coin_id" json:"id"`
	Symbol    string    `bson:"symbol" json:"symbol"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image" json:"image"`
	Price     float64   `bson:"price" json:"price"`
	MarketCap float64   `bson:"market_cap" json:"marketCap"`
	Change24h float64   `bson:"change_24h" json:"change24h"`
	ChartData []float64 `bson:"chart_data" json:"chartData"`
}

// MarketSnapshot единый кеш-документ с рыночными данными (last-writer-wins)
type MarketSnapshot struct {
	Key       string    `bson:"_id" json:"key"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
	Coins     []Coin    `bson:"coins" json:"coins"`
}

// DashboardData агрегированные данные для дашборда пользователя
type DashboardData struct {
	AccountBalance   float64   `json:"accountBalance"`
	TodayPnL         float64   `json:"todayPnL"`
	TodayGain        float64   `json:"todayGain"`
	BalanceReport    float64   `json:"balanceReport"`
	TotalDeposits    float64   `json:"totalDeposits"`
	TotalWithdrawals float64   `json:"totalWithdrawals"`
	TotalTrades      int64     `json:"totalTrades"`
	Holdings         []Holding `json:"holdings"`
}

// TransactionType определяет типы транзакций
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeTrade      = "trade"
)

// TransactionStatus определяет статусы транзакций
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// WithdrawalStatus определяет статусы заявок на вывод
const (
	WithdrawalStatusPending    = "pending"
	WithdrawalStatusProcessing = "processing"
	WithdrawalStatusCompleted  = "completed"
	WithdrawalStatusFailed     = "failed"
	WithdrawalStatusCancelled  = "cancelled"
)

// BalanceDirection направление изменения баланса
const (
	BalanceAdd      = "add"
	BalanceSubtract = "subtract"
)

// AuthProvider способы аутентификации
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// ValidWithdrawalStatus проверяет, входит ли статус в допустимый набор
func ValidWithdrawalStatus(status string) bool {
	switch status {
	case WithdrawalStatusPending, WithdrawalStatusProcessing, WithdrawalStatusCompleted,
		WithdrawalStatusFailed, WithdrawalStatusCancelled:
		return true
	}
	return false
}
