package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coinedge/internal/storages"
)

// ErrInvalidWalletAddress возвращается для адреса, не похожего на ERC20
var ErrInvalidWalletAddress = errors.New("invalid wallet address")

// validateWalletAddress проверяет формат ERC20 адреса: 0x + 40 hex символов
func validateWalletAddress(address string) error {
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return ErrInvalidWalletAddress
	}
	for _, c := range address[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return ErrInvalidWalletAddress
		}
	}
	return nil
}

// CreateWithdrawal создает заявку на вывод средств.
// Баланс списывается сразу при создании заявки.
func (s *WalletService) CreateWithdrawal(ctx context.Context, userID string, amount float64, walletAddress string) (*storages.Withdrawal, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if err := validateWalletAddress(walletAddress); err != nil {
		return nil, err
	}

	// Атомарное списание: при недостатке средств вернется ErrInsufficientFunds
	if _, err := s.storage.UpdateBalance(ctx, userID, amount, storages.BalanceSubtract); err != nil {
		return nil, err
	}

	withdrawal := &storages.Withdrawal{
		UserID:        userID,
		Amount:        amount,
		WalletAddress: walletAddress,
		Status:        storages.WithdrawalStatusPending,
	}

	if err := s.storage.CreateWithdrawal(ctx, withdrawal); err != nil {
		// Списание уже прошло, возвращаем средства
		if _, refundErr := s.storage.UpdateBalance(ctx, userID, amount, storages.BalanceAdd); refundErr != nil {
			s.logger.Errorf("Failed to refund after withdrawal insert error: user=%s amount=%.2f: %v",
				userID, amount, refundErr)
		}
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	tx := &storages.Transaction{
		UserID:        userID,
		Type:          storages.TransactionTypeWithdrawal,
		Amount:        amount,
		Status:        storages.TransactionStatusPending,
		Description:   fmt.Sprintf("Withdrawal to %s", walletAddress),
		WalletAddress: walletAddress,
	}
	if err := s.RecordTransaction(ctx, tx); err != nil {
		s.logger.Errorf("Failed to record withdrawal transaction: user=%s: %v", userID, err)
	}

	if s.kafkaProducer != nil {
		if err := s.kafkaProducer.SendLargeOperationNotification(ctx, userID,
			storages.TransactionTypeWithdrawal, "", withdrawal.Status, amount); err != nil {
			s.logger.Errorf("Failed to send withdrawal notification: %v", err)
		}
	}

	s.logger.Infof("Withdrawal created: user=%s amount=%.2f address=%s", userID, amount, walletAddress)
	return withdrawal, nil
}

// UpdateWithdrawalStatus переводит заявку в новый статус.
// Переход из pending в failed или cancelled возвращает средства на баланс.
// Повторные переводы в тот же статус безопасны: возврат выполняется не более одного раза.
func (s *WalletService) UpdateWithdrawalStatus(ctx context.Context, withdrawalID, status, transactionID string) (*storages.Withdrawal, error) {
	if !storages.ValidWithdrawalStatus(status) {
		return nil, storages.ErrInvalidStatus
	}

	previous, err := s.storage.UpdateWithdrawalStatus(ctx, withdrawalID, status, transactionID)
	if err != nil {
		return nil, err
	}

	refundable := status == storages.WithdrawalStatusFailed || status == storages.WithdrawalStatusCancelled
	if refundable && previous.Status == storages.WithdrawalStatusPending {
		if _, err := s.storage.UpdateBalance(ctx, previous.UserID, previous.Amount, storages.BalanceAdd); err != nil {
			s.logger.Errorf("Failed to refund withdrawal %s: %v", withdrawalID, err)
			return nil, fmt.Errorf("failed to refund withdrawal: %w", err)
		}
		s.logger.Infof("Withdrawal %s refunded: user=%s amount=%.2f", withdrawalID, previous.UserID, previous.Amount)
	}

	updated := *previous
	updated.Status = status
	if transactionID != "" {
		updated.TransactionID = transactionID
	}

	s.logger.Infof("Withdrawal %s status: %s -> %s", withdrawalID, previous.Status, status)
	return &updated, nil
}

// GetWithdrawalHistory возвращает заявки пользователя, новые сверху
func (s *WalletService) GetWithdrawalHistory(ctx context.Context, userID string) ([]storages.Withdrawal, error) {
	withdrawals, err := s.storage.GetUserWithdrawals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawals: %w", err)
	}
	return withdrawals, nil
}

// GetBalance возвращает текущий баланс пользователя
func (s *WalletService) GetBalance(ctx context.Context, userID string) (float64, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}
