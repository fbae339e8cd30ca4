package service

import (
	"context"
	"errors"
	"fmt"

	"coinedge/internal/storages"
)

// ErrUnsupportedCrypto возвращается для валюты без адреса пополнения
var ErrUnsupportedCrypto = errors.New("unsupported cryptocurrency")

// Статические адреса пополнения по валютам
var depositAddresses = map[string]string{
	"ETH":        "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7",
	"BTC":        "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
	"USDT_ERC20": "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7",
	"USDT_TRC20": "TN3W4H6rK2ce4vX9YnFQHwKENnHjoxb3m9",
}

// RecordDeposit фиксирует пополнение и зачисляет средства на баланс
func (s *WalletService) RecordDeposit(ctx context.Context, userID string, amount float64, crypto, txHash, walletAddress string) (*storages.Deposit, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if crypto == "" {
		return nil, fmt.Errorf("crypto is required")
	}

	deposit := &storages.Deposit{
		UserID:        userID,
		Amount:        amount,
		Crypto:        crypto,
		TxHash:        txHash,
		WalletAddress: walletAddress,
		Status:        storages.TransactionStatusCompleted,
	}

	if err := s.storage.CreateDeposit(ctx, deposit); err != nil {
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	if _, err := s.storage.UpdateBalance(ctx, userID, amount, storages.BalanceAdd); err != nil {
		return nil, fmt.Errorf("failed to credit balance: %w", err)
	}

	tx := &storages.Transaction{
		UserID:      userID,
		Type:        storages.TransactionTypeDeposit,
		Amount:      amount,
		Status:      storages.TransactionStatusCompleted,
		Description: fmt.Sprintf("Deposit via %s", crypto),
		Crypto:      crypto,
	}
	if err := s.RecordTransaction(ctx, tx); err != nil {
		s.logger.Errorf("Failed to record deposit transaction: user=%s: %v", userID, err)
	}

	if s.kafkaProducer != nil {
		if err := s.kafkaProducer.SendLargeOperationNotification(ctx, userID,
			storages.TransactionTypeDeposit, crypto, deposit.Status, amount); err != nil {
			s.logger.Errorf("Failed to send deposit notification: %v", err)
		}
	}

	s.logger.Infof("Deposit recorded: user=%s amount=%.2f crypto=%s", userID, amount, crypto)
	return deposit, nil
}

// GetDepositHistory возвращает пополнения пользователя, новые сверху
func (s *WalletService) GetDepositHistory(ctx context.Context, userID string) ([]storages.Deposit, error) {
	deposits, err := s.storage.GetUserDeposits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposits: %w", err)
	}
	return deposits, nil
}

// GetDepositAddresses возвращает адреса пополнения по всем валютам
func (s *WalletService) GetDepositAddresses() map[string]string {
	addresses := make(map[string]string, len(depositAddresses))
	for crypto, address := range depositAddresses {
		addresses[crypto] = address
	}
	return addresses
}

// GetDepositAddress возвращает адрес пополнения для конкретной валюты
func (s *WalletService) GetDepositAddress(crypto string) (string, error) {
	address, ok := depositAddresses[crypto]
	if !ok {
		return "", ErrUnsupportedCrypto
	}
	return address, nil
}

// SubmitContactMessage сохраняет обращение из формы обратной связи
func (s *WalletService) SubmitContactMessage(ctx context.Context, msg *storages.ContactMessage) error {
	if msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("email and message are required")
	}

	if err := s.storage.CreateContactMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}

	s.logger.Infof("Contact message received from %s", msg.Email)
	return nil
}
