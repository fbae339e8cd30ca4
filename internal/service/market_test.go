package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinedge/internal/cache"
	"coinedge/internal/coingecko"
)

func TestGetTopCoins(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":65000,
			 "market_cap":1280000000000,"price_change_percentage_24h":1.2,
			 "sparkline_in_7d":{"price":[64000,65000]}}
		]`))
	}))
	defer server.Close()

	storage := NewMockStorage()
	svc := newTestService(storage)
	svc.marketClient = coingecko.NewClient(server.URL, 5*time.Second, svc.logger)
	svc.marketCache = cache.NewMarketCache(storage, 30*time.Minute, svc.logger)

	// Первый запрос идет в API
	result, err := svc.GetTopCoins(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, MarketSourceAPI, result.Source)
	require.Len(t, result.Coins, 1)
	assert.Equal(t, "BTC", result.Coins[0].Symbol)
	assert.NotEmpty(t, result.UpdatedAt)
	assert.Equal(t, 1, requests)

	// Второй запрос обслуживается из кэша
	result, err = svc.GetTopCoins(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, MarketSourceCache, result.Source)
	assert.Equal(t, 1, requests)
}
