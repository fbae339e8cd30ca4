package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinedge/internal/storages"
)

const testWalletAddress = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7"

func TestCreateWithdrawal(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = svc.UpdateBalance(ctx, userID, 100.0, storages.BalanceAdd)
	require.NoError(t, err)

	withdrawal, err := svc.CreateWithdrawal(ctx, userID, 40.0, testWalletAddress)
	require.NoError(t, err)
	assert.Equal(t, storages.WithdrawalStatusPending, withdrawal.Status)
	assert.Equal(t, 40.0, withdrawal.Amount)

	// Баланс списан сразу при создании заявки
	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)

	// Транзакция вывода записана в историю
	transactions, err := svc.GetUserTransactions(ctx, userID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, transactions)
	assert.Equal(t, storages.TransactionTypeWithdrawal, transactions[0].Type)
	assert.Equal(t, storages.TransactionStatusPending, transactions[0].Status)
}

func TestCreateWithdrawalInsufficientFunds(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = svc.UpdateBalance(ctx, userID, 10.0, storages.BalanceAdd)
	require.NoError(t, err)

	_, err = svc.CreateWithdrawal(ctx, userID, 50.0, testWalletAddress)
	assert.ErrorIs(t, err, storages.ErrInsufficientFunds)

	// Баланс не изменился
	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)
}

func TestCreateWithdrawalValidation(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = svc.CreateWithdrawal(ctx, userID, -5.0, testWalletAddress)
	assert.Error(t, err)

	_, err = svc.CreateWithdrawal(ctx, userID, 10.0, "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidWalletAddress)

	// Слишком короткий hex
	_, err = svc.CreateWithdrawal(ctx, userID, 10.0, "0x742d35Cc")
	assert.ErrorIs(t, err, ErrInvalidWalletAddress)

	// Недопустимые символы
	_, err = svc.CreateWithdrawal(ctx, userID, 10.0, "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEzz")
	assert.ErrorIs(t, err, ErrInvalidWalletAddress)
}

func TestWithdrawalRefundOnFailure(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = svc.UpdateBalance(ctx, userID, 100.0, storages.BalanceAdd)
	require.NoError(t, err)

	withdrawal, err := svc.CreateWithdrawal(ctx, userID, 40.0, testWalletAddress)
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)

	// Провал заявки возвращает средства
	updated, err := svc.UpdateWithdrawalStatus(ctx, withdrawal.ID.Hex(), storages.WithdrawalStatusFailed, "")
	require.NoError(t, err)
	assert.Equal(t, storages.WithdrawalStatusFailed, updated.Status)

	balance, err = svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	// Повторный перевод в failed не зачисляет средства второй раз
	_, err = svc.UpdateWithdrawalStatus(ctx, withdrawal.ID.Hex(), storages.WithdrawalStatusFailed, "")
	require.NoError(t, err)

	balance, err = svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)
}

func TestWithdrawalRefundOnCancel(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = svc.UpdateBalance(ctx, userID, 100.0, storages.BalanceAdd)
	require.NoError(t, err)

	withdrawal, err := svc.CreateWithdrawal(ctx, userID, 25.0, testWalletAddress)
	require.NoError(t, err)

	_, err = svc.UpdateWithdrawalStatus(ctx, withdrawal.ID.Hex(), storages.WithdrawalStatusCancelled, "")
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)
}

func TestWithdrawalCompletionNoRefund(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	userID := user.ID.Hex()

	_, err = svc.UpdateBalance(ctx, userID, 100.0, storages.BalanceAdd)
	require.NoError(t, err)

	withdrawal, err := svc.CreateWithdrawal(ctx, userID, 40.0, testWalletAddress)
	require.NoError(t, err)

	// pending -> processing -> completed
	_, err = svc.UpdateWithdrawalStatus(ctx, withdrawal.ID.Hex(), storages.WithdrawalStatusProcessing, "")
	require.NoError(t, err)

	updated, err := svc.UpdateWithdrawalStatus(ctx, withdrawal.ID.Hex(), storages.WithdrawalStatusCompleted, "tx-hash-1")
	require.NoError(t, err)
	assert.Equal(t, storages.WithdrawalStatusCompleted, updated.Status)
	assert.Equal(t, "tx-hash-1", updated.TransactionID)

	balance, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)

	// Провал после completed не возвращает средства: заявка уже не была pending
	_, err = svc.UpdateWithdrawalStatus(ctx, withdrawal.ID.Hex(), storages.WithdrawalStatusFailed, "")
	require.NoError(t, err)

	balance, err = svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)
}

func TestUpdateWithdrawalStatusErrors(t *testing.T) {
	storage := NewMockStorage()
	svc := newTestService(storage)
	ctx := context.Background()

	_, err := svc.UpdateWithdrawalStatus(ctx, "missing", "frozen", "")
	assert.ErrorIs(t, err, storages.ErrInvalidStatus)

	_, err = svc.UpdateWithdrawalStatus(ctx, "missing", storages.WithdrawalStatusCompleted, "")
	assert.ErrorIs(t, err, storages.ErrWithdrawalNotFound)
}
