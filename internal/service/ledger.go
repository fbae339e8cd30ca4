package service

import (
	"context"
	"fmt"

	"coinedge/internal/storages"
)

// UpdateBalance изменяет баланс пользователя и возвращает новое значение.
// Списание атомарно проверяет достаточность средств.
func (s *WalletService) UpdateBalance(ctx context.Context, userID string, amount float64, direction string) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	if direction != storages.BalanceAdd && direction != storages.BalanceSubtract {
		return 0, fmt.Errorf("invalid balance direction: %s", direction)
	}

	newBalance, err := s.storage.UpdateBalance(ctx, userID, amount, direction)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("Balance updated: user=%s direction=%s amount=%.2f new_balance=%.2f",
		userID, direction, amount, newBalance)
	return newBalance, nil
}

// RecordTransaction записывает операцию в историю и обновляет счетчики пользователя
func (s *WalletService) RecordTransaction(ctx context.Context, tx *storages.Transaction) error {
	if err := s.storage.CreateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := s.storage.ApplyTransactionTotals(ctx, tx.UserID, tx.Type, tx.Amount); err != nil {
		s.logger.Errorf("Failed to apply transaction totals: user=%s type=%s: %v", tx.UserID, tx.Type, err)
		return fmt.Errorf("failed to apply transaction totals: %w", err)
	}

	return nil
}

// GetDashboardData собирает данные для главного экрана пользователя
func (s *WalletService) GetDashboardData(ctx context.Context, userID string) (*storages.DashboardData, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &storages.DashboardData{
		AccountBalance:   user.Balance,
		TodayPnL:         user.TodayPnL,
		TodayGain:        user.TodayGain,
		BalanceReport:    user.Balance + user.TodayPnL,
		TotalDeposits:    user.TotalDeposits,
		TotalWithdrawals: user.TotalWithdrawals,
		TotalTrades:      user.TotalTrades,
		Holdings:         user.Holdings,
	}

	return data, nil
}

// GetUserTransactions возвращает историю операций пользователя, новые сверху
func (s *WalletService) GetUserTransactions(ctx context.Context, userID string, limit int) ([]storages.Transaction, error) {
	transactions, err := s.storage.GetUserTransactions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// UpdateTodayReport обновляет дневные показатели PnL пользователя
func (s *WalletService) UpdateTodayReport(ctx context.Context, userID string, todayPnL, todayGain float64) error {
	if err := s.storage.UpdateTodayReport(ctx, userID, todayPnL, todayGain); err != nil {
		return err
	}

	s.logger.Debugf("Today report updated: user=%s pnl=%.2f gain=%.2f", userID, todayPnL, todayGain)
	return nil
}

// UpdateHoldings заменяет портфель пользователя
func (s *WalletService) UpdateHoldings(ctx context.Context, userID string, holdings []storages.Holding) error {
	for _, h := range holdings {
		if h.Symbol == "" {
			return fmt.Errorf("holding symbol is required")
		}
		if h.Balance < 0 || h.Value < 0 {
			return fmt.Errorf("holding amounts must be non-negative")
		}
	}

	if err := s.storage.UpdateHoldings(ctx, userID, holdings); err != nil {
		return err
	}

	s.logger.Debugf("Holdings updated: user=%s count=%d", userID, len(holdings))
	return nil
}
