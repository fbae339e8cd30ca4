package storages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingUserDefaults(t *testing.T) {
	// Пустой документ получает все поля по умолчанию
	missing := MissingUserDefaults(map[string]interface{}{})
	assert.Len(t, missing, len(DefaultUserFields()))
	assert.Contains(t, missing, "balance")
	assert.Contains(t, missing, "holdings")
	assert.Contains(t, missing, "provider")

	// Частично заполненный документ получает только отсутствующие поля
	missing = MissingUserDefaults(map[string]interface{}{
		"balance":  150.0,
		"provider": "google",
	})
	assert.NotContains(t, missing, "balance")
	assert.NotContains(t, missing, "provider")
	assert.Contains(t, missing, "total_deposits")

	// Нулевые значения считаются присутствующими
	missing = MissingUserDefaults(map[string]interface{}{"balance": 0.0})
	assert.NotContains(t, missing, "balance")
}

func TestMissingUserDefaultsIdempotent(t *testing.T) {
	raw := map[string]interface{}{}
	for field, value := range DefaultUserFields() {
		raw[field] = value
	}

	// Документ со всеми полями не требует изменений
	assert.Empty(t, MissingUserDefaults(raw))
}

func TestValidWithdrawalStatus(t *testing.T) {
	for _, status := range []string{
		WithdrawalStatusPending,
		WithdrawalStatusProcessing,
		WithdrawalStatusCompleted,
		WithdrawalStatusFailed,
		WithdrawalStatusCancelled,
	} {
		assert.True(t, ValidWithdrawalStatus(status), status)
	}

	assert.False(t, ValidWithdrawalStatus("frozen"))
	assert.False(t, ValidWithdrawalStatus(""))
	assert.False(t, ValidWithdrawalStatus("PENDING"))
}
