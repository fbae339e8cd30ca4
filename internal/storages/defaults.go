package storages

// DefaultUserFields возвращает набор полей, которые обязаны присутствовать
// в каждом документе пользователя, со значениями по умолчанию.
// Используется при создании пользователя и при миграции старых документов.
func DefaultUserFields() map[string]interface{} {
	return map[string]interface{}{
		"balance":           float64(0),
		"total_deposits":    float64(0),
		"total_withdrawals": float64(0),
		"total_trades":      int64(0),
		"today_pnl":         float64(0),
		"today_gain":        float64(0),
		"holdings":          []Holding{},
		"is_email_verified": false,
		"provider":          ProviderEmail,
	}
}

// MissingUserDefaults сравнивает сырой документ пользователя с набором
// обязательных полей и возвращает только отсутствующие. Повторный вызов
// над уже дополненным документом возвращает пустую карту, поэтому
// бэкфилл идемпотентен.
func MissingUserDefaults(raw map[string]interface{}) map[string]interface{} {
	missing := make(map[string]interface{})
	for field, value := range DefaultUserFields() {
		if _, ok := raw[field]; !ok {
			missing[field] = value
		}
	}
	return missing
}
